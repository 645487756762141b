package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// CertificateData carries what is printed on a course completion certificate.
type CertificateData struct {
	InstituteName     string
	StudentName       string
	FatherName        string
	RollNumber        string
	CourseName        string
	CourseDuration    string
	CertificateNumber string
	IssueDate         time.Time
	VerifyURL         string
}

// CertificateRenderer draws certificates as single page landscape PDFs.
type CertificateRenderer struct {
	qrSize int
}

// NewCertificateRenderer constructs a renderer.
func NewCertificateRenderer() *CertificateRenderer {
	return &CertificateRenderer{qrSize: 256}
}

// Render produces the certificate PDF with a QR code pointing at VerifyURL.
func (r *CertificateRenderer) Render(data CertificateData) ([]byte, error) {
	if data.StudentName == "" || data.RollNumber == "" {
		return nil, fmt.Errorf("certificate requires student name and roll number")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, height := pdf.GetPageSize()

	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(20, 60, 120)
	pdf.Rect(8, 8, width-16, height-16, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(12, 12, width-24, height-24, "D")

	pdf.SetTextColor(20, 60, 120)
	pdf.SetFont("Times", "B", 26)
	pdf.SetY(28)
	pdf.CellFormat(0, 12, tr(data.InstituteName), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "", 16)
	pdf.CellFormat(0, 10, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)
	pdf.SetFont("Times", "I", 13)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 22)
	pdf.CellFormat(0, 12, tr(data.StudentName), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "", 13)
	if data.FatherName != "" {
		pdf.CellFormat(0, 8, tr("S/o / D/o "+data.FatherName), "", 1, "C", false, 0, "")
	}
	course := data.CourseName
	if data.CourseDuration != "" {
		course = fmt.Sprintf("%s (%s)", course, data.CourseDuration)
	}
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 16)
	pdf.CellFormat(0, 10, tr(course), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, height-45)
	pdf.CellFormat(120, 6, tr("Roll No: "+data.RollNumber), "", 2, "L", false, 0, "")
	if data.CertificateNumber != "" {
		pdf.CellFormat(120, 6, tr("Certificate No: "+data.CertificateNumber), "", 2, "L", false, 0, "")
	}
	if !data.IssueDate.IsZero() {
		pdf.CellFormat(120, 6, "Issued: "+data.IssueDate.Format("02 Jan 2006"), "", 2, "L", false, 0, "")
	}

	if data.VerifyURL != "" {
		png, err := qrcode.Encode(data.VerifyURL, qrcode.Medium, r.qrSize)
		if err != nil {
			return nil, fmt.Errorf("encode verification qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("verify-qr", width-55, height-60, 35, 35, false, opts, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetXY(width-65, height-24)
		pdf.CellFormat(55, 4, "Scan to verify", "", 0, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
