package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Roll", "Amount"},
		Rows: []map[string]string{
			{"Roll": "KPCI-2024-1234", "Amount": "3000"},
			{"Roll": "=HYPERLINK(\"x\")", "Amount": "-5"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Roll,Amount\nKPCI-2024-1234,3000\n\"'=HYPERLINK(\"\"x\"\")\",'-5\n", string(out))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(Dataset{
		Headers: []string{"Roll", "Amount"},
		Rows:    []map[string]string{{"Roll": "KPCI-2024-1234", "Amount": "3000"}},
	}, "Fee payments")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestCertificateRender(t *testing.T) {
	out, err := NewCertificateRenderer().Render(CertificateData{
		InstituteName:  "KPCI Computer Institute",
		StudentName:    "Asha Verma",
		RollNumber:     "KPCI-2024-1234",
		CourseName:     "DCA",
		CourseDuration: "6 Months",
		IssueDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		VerifyURL:      "https://kpci.edu.in/verify/KPCI-2024-1234",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestCertificateRequiresIdentity(t *testing.T) {
	_, err := NewCertificateRenderer().Render(CertificateData{RollNumber: "KPCI-2024-1234"})
	assert.Error(t, err)
}
