package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlipFields_CompleteSlip(t *testing.T) {
	text := `KERAJAAN MALAYSIA
Nama: AHMAD BIN ABDULLAH
Majikan: Kementerian Pendidikan Malaysia
Jawatan: Tetap
Gaji Pokok: RM 3,250.00
Gaji Bersih: RM 2,980.50`

	fields := ParseSlipFields(text)

	assert.Equal(t, "AHMAD BIN ABDULLAH", fields.Name)
	assert.Equal(t, "Kementerian Pendidikan Malaysia", fields.Employer)
	assert.Equal(t, "Tetap", fields.EmploymentType)
	assert.Equal(t, 3250.00, fields.MonthlySalary)
	assert.True(t, fields.DocumentValid)
}

func TestParseSlipFields_EnglishLabels(t *testing.T) {
	text := `Name: Siti Aminah
Employer: Jabatan Kastam Diraja Malaysia
Basic Salary: 4100`

	fields := ParseSlipFields(text)

	assert.Equal(t, "Siti Aminah", fields.Name)
	assert.Equal(t, "Jabatan Kastam Diraja Malaysia", fields.Employer)
	assert.Equal(t, 4100.0, fields.MonthlySalary)
	assert.True(t, fields.DocumentValid)
}

func TestParseSlipFields_MissingEmployerIsInvalid(t *testing.T) {
	fields := ParseSlipFields("Nama: Ali\nGaji Pokok: RM 2,000.00")

	assert.False(t, fields.DocumentValid)
	assert.Equal(t, 2000.0, fields.MonthlySalary)
}

func TestParseSlipFields_MissingSalaryIsInvalid(t *testing.T) {
	fields := ParseSlipFields("Nama: Ali\nMajikan: Polis Diraja Malaysia")

	assert.False(t, fields.DocumentValid)
	assert.Equal(t, "Polis Diraja Malaysia", fields.Employer)
}

func TestParseSlipFields_GarbageText(t *testing.T) {
	fields := ParseSlipFields("resit pembelian kedai runcit jumlah rm 12.50 terima kasih")

	assert.False(t, fields.DocumentValid)
	assert.Empty(t, fields.Employer)
}
