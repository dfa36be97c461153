package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

func TestPeriodLabel(t *testing.T) {
	en := New(LocaleEN)
	vi := New(LocaleVI)

	assert.Equal(t, "Month 01 2024", en.PeriodLabel("2024-01-01 00:00:00"))
	assert.Equal(t, "Month 03 2024", en.PeriodLabel("2024-03-15"))
	assert.Equal(t, "tháng 01 2024", vi.PeriodLabel("2024-01-01 00:00:00"))

	// Unparseable labels pass through unchanged.
	assert.Equal(t, "Q1 bonus", en.PeriodLabel("Q1 bonus"))
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	f := New("de")
	assert.Equal(t, "The salary of <@1> has been reset.", f.ResetChannel("<@1>"))
}

func TestAdjusted(t *testing.T) {
	en := New(LocaleEN)
	assert.Equal(t,
		"The salary for <@1> in Month 01 2024 is 50 K (Previous: 0 K).",
		en.Adjusted("<@1>", "2024-01-01 00:00:00", 50, 0))

	vi := New(LocaleVI)
	assert.Equal(t,
		"Lương tháng 01 2024 của <@1> là 50 K (Trước đó: 0 K).",
		vi.Adjusted("<@1>", "2024-01-01 00:00:00", 50, 0))
}

func TestAdjustedDM(t *testing.T) {
	en := New(LocaleEN)

	assert.Equal(t,
		"You have been added 50 K to the salary in Month 01 2024. Your current salary is 50 K.",
		en.AdjustedDM(models.OperationCredit, "2024-01-01 00:00:00", 50, 50))

	// Debits report the magnitude, not the signed delta.
	assert.Equal(t,
		"You have been subtracted 10 K from the salary in Month 01 2024. Your current salary is 40 K.",
		en.AdjustedDM(models.OperationDebit, "2024-01-01 00:00:00", -10, 40))
}

func TestHistory(t *testing.T) {
	en := New(LocaleEN)
	entries := []models.SalaryEntry{
		{Period: "2024-02-01 00:00:00", Operation: models.OperationDebit, Amount: -3, ResultingBalance: 7},
		{Period: "2024-01-01 00:00:00", Operation: models.OperationCredit, Amount: 10, ResultingBalance: 10},
	}

	want := "Salary history of <@1>:\n" +
		"Month 02 2024: debit -3 K (total: 7 K)\n" +
		"Month 01 2024: credit 10 K (total: 10 K)"
	assert.Equal(t, want, en.History("<@1>", entries))
}

func TestAmountsRenderWithoutTrailingZeros(t *testing.T) {
	en := New(LocaleEN)
	assert.Contains(t, en.Adjusted("<@1>", "x", 12.5, 0), "12.5 K")
	assert.Contains(t, en.Adjusted("<@1>", "x", 50, 12.5), "50 K")
}

func TestUndoMessages(t *testing.T) {
	vi := New(LocaleVI)
	assert.Equal(t, "Undo thành công! Lương của <@1> đã được khôi phục.", vi.UndoDone("<@1>"))
	assert.Equal(t, "<@1> không có lệnh nào để undo.", vi.NothingToUndo("<@1>"))

	en := New(LocaleEN)
	assert.Equal(t, "<@1> has no commands to undo.", en.NothingToUndo("<@1>"))
}
