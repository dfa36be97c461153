// Package messages formats every user-visible string in one place, so the
// bot speaks a single configurable language instead of forking the whole
// command set per locale.
package messages

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

// Supported locales
const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

// PeriodLayout is the canonical layout for period labels and their default
// value (the current timestamp).
const PeriodLayout = "2006-01-02 15:04:05"

const periodDateLayout = "2006-01-02"

// bundle holds one locale's format strings.
type bundle struct {
	monthLabel    string // fmt: month-year, e.g. "01 2024"
	adjusted      string // fmt: period label, target mention, new balance, old balance
	creditedDM    string // fmt: amount, period label, new balance
	debitedDM     string // fmt: amount, period label, new balance
	resetChannel  string // fmt: target mention
	resetDM       string
	undoDone      string // fmt: target mention
	nothingToUndo string // fmt: target mention
	historyHeader string // fmt: target mention
	historyLine   string // fmt: period label, operation, amount, balance
	historySent   string // fmt: target mention
	historySelf   string
	noHistory     string // fmt: target mention
	operations    map[string]string
}

var bundles = map[string]bundle{
	LocaleEN: {
		monthLabel:    "Month %s",
		adjusted:      "The salary for %s in %s is %s K (Previous: %s K).",
		creditedDM:    "You have been added %s K to the salary in %s. Your current salary is %s K.",
		debitedDM:     "You have been subtracted %s K from the salary in %s. Your current salary is %s K.",
		resetChannel:  "The salary of %s has been reset.",
		resetDM:       "Your salary has been reset. All previous salary information has been deleted.",
		undoDone:      "Undo successful! The salary of %s has been restored.",
		nothingToUndo: "%s has no commands to undo.",
		historyHeader: "Salary history of %s:",
		historyLine:   "%s: %s %s K (total: %s K)",
		historySent:   "The salary history has been sent privately to %s.",
		historySelf:   "The salary history has been sent privately to you.",
		noHistory:     "%s has no salary history.",
		operations: map[string]string{
			models.OperationCredit: "credit",
			models.OperationDebit:  "debit",
		},
	},
	LocaleVI: {
		monthLabel:    "tháng %s",
		adjusted:      "Lương %[2]s của %[1]s là %[3]s K (Trước đó: %[4]s K).",
		creditedDM:    "Bạn đã được thêm %s K vào lương %s. Lương hiện tại của bạn là %s K.",
		debitedDM:     "Bạn đã bị trừ %s K khỏi lương %s. Lương hiện tại của bạn là %s K.",
		resetChannel:  "Lương của %s đã được reset.",
		resetDM:       "Lương của bạn đã được reset. Mọi thông tin lương trước đó đã bị xóa.",
		undoDone:      "Undo thành công! Lương của %s đã được khôi phục.",
		nothingToUndo: "%s không có lệnh nào để undo.",
		historyHeader: "Lịch sử lương của %s:",
		historyLine:   "%s: %s %s K (tổng: %s K)",
		historySent:   "Lịch sử lương đã được gửi riêng tư cho %s.",
		historySelf:   "Lịch sử lương đã được gửi riêng tư cho bạn.",
		noHistory:     "%s không có lịch sử lương.",
		operations: map[string]string{
			models.OperationCredit: "cộng",
			models.OperationDebit:  "trừ",
		},
	},
}

// Formatter renders user-visible messages for one locale.
type Formatter struct {
	b bundle
}

// New returns a Formatter for the given locale, falling back to English
// for unknown locales.
func New(locale string) *Formatter {
	b, ok := bundles[strings.ToLower(locale)]
	if !ok {
		b = bundles[LocaleEN]
	}
	return &Formatter{b: b}
}

// PeriodLabel renders a period value as a human month label, e.g.
// "Month 01 2024" / "tháng 01 2024". Unparseable labels pass through
// unchanged.
func (f *Formatter) PeriodLabel(period string) string {
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		t, err = time.Parse(periodDateLayout, period)
	}
	if err != nil {
		return period
	}
	return fmt.Sprintf(f.b.monthLabel, t.Format("01 2006"))
}

// Adjusted is the channel reply after a credit or debit.
func (f *Formatter) Adjusted(targetMention, period string, newBalance, oldBalance float64) string {
	return fmt.Sprintf(f.b.adjusted, targetMention, f.PeriodLabel(period), amount(newBalance), amount(oldBalance))
}

// AdjustedDM is the private message sent to the adjusted user.
func (f *Formatter) AdjustedDM(operation, period string, delta, newBalance float64) string {
	format := f.b.creditedDM
	if operation == models.OperationDebit {
		format = f.b.debitedDM
		delta = -delta
	}
	return fmt.Sprintf(format, amount(delta), f.PeriodLabel(period), amount(newBalance))
}

// ResetChannel is the channel reply after a reset.
func (f *Formatter) ResetChannel(targetMention string) string {
	return fmt.Sprintf(f.b.resetChannel, targetMention)
}

// ResetDM is the private message sent to the reset user.
func (f *Formatter) ResetDM() string {
	return f.b.resetDM
}

// UndoDone is the channel reply after a successful undo.
func (f *Formatter) UndoDone(targetMention string) string {
	return fmt.Sprintf(f.b.undoDone, targetMention)
}

// NothingToUndo is the channel reply when no entry matched the period.
func (f *Formatter) NothingToUndo(targetMention string) string {
	return fmt.Sprintf(f.b.nothingToUndo, targetMention)
}

// History renders a user's full salary history as one private message.
func (f *Formatter) History(targetMention string, entries []models.SalaryEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(f.b.historyHeader, targetMention))
	for _, e := range entries {
		op, ok := f.b.operations[e.Operation]
		if !ok {
			op = e.Operation
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(f.b.historyLine,
			f.PeriodLabel(e.Period), op, amount(e.Amount), amount(e.ResultingBalance)))
	}
	return sb.String()
}

// HistorySent is the public acknowledgement after DMing a history.
func (f *Formatter) HistorySent(targetMention string) string {
	return fmt.Sprintf(f.b.historySent, targetMention)
}

// HistorySentSelf is the public acknowledgement for the self-view command.
func (f *Formatter) HistorySentSelf() string {
	return f.b.historySelf
}

// NoHistory is the channel reply when the user has no entries at all.
func (f *Formatter) NoHistory(targetMention string) string {
	return fmt.Sprintf(f.b.noHistory, targetMention)
}

// amount renders a salary figure without trailing zeros ("50", "12.5").
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
