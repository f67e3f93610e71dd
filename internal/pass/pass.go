package pass

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"time"

	"github.com/signintech/gopdf"
	"github.com/skip2/go-qrcode"

	"etiket-museum/internal/models"
)

// Payload is the encrypted content embedded in a visit-pass QR code.
// Gate scanners decrypt it with the shared secret to validate entry.
type Payload struct {
	OrderCode   string `json:"orderCode"`
	VisitorName string `json:"visitorName"`
	VisitDate   string `json:"visitDate"`
	Quantity    int    `json:"quantity"`
	IssuedAt    string `json:"issuedAt"`
}

type Generator struct {
	secret   []byte
	fontPath string
}

func NewGenerator(secret, fontPath string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:], fontPath: fontPath}
}

// QRPNG renders the order's entry pass as a 256x256 QR code PNG.
func (g *Generator) QRPNG(order models.Order) ([]byte, error) {
	payload := Payload{
		OrderCode:   order.OrderCode,
		VisitorName: order.VisitorName,
		VisitDate:   order.VisitDate.Format("2006-01-02"),
		Quantity:    order.TotalQuantity(),
		IssuedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// PDF renders a printable visit pass with the order details and QR code.
func (g *Generator) PDF(order models.Order, qrCode []byte) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont("sans", g.fontPath); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	if err := pdf.SetFont("sans", "", 14); err != nil {
		return nil, fmt.Errorf("failed to set font: %w", err)
	}

	addHeader(pdf)

	pdf.SetY(60)
	addOrderInfo(pdf, order)

	if len(qrCode) > 0 {
		pdf.SetY(pdf.GetY() + 20)
		addQRCode(pdf, qrCode)
	}

	pdf.SetY(280)
	addFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func addHeader(pdf *gopdf.GoPdf) {
	pdf.SetX(40)
	pdf.SetY(30)
	pdf.Cell(nil, "TIKET MASUK MUSEUM")
}

func addOrderInfo(pdf *gopdf.GoPdf, order models.Order) {
	info := []struct {
		Label string
		Value string
	}{
		{"Kode Pesanan", order.OrderCode},
		{"Nama Pengunjung", order.VisitorName},
		{"Tanggal Kunjungan", order.VisitDate.Format("02-01-2006")},
		{"Jumlah Tiket", fmt.Sprintf("%d", order.TotalQuantity())},
		{"Status", string(order.AttendanceStatus)},
	}

	for _, item := range info {
		pdf.SetX(40)
		pdf.Cell(nil, item.Label+": "+item.Value)
		pdf.Br(20)
	}
}

func addQRCode(pdf *gopdf.GoPdf, qrCode []byte) {
	img, err := png.Decode(bytes.NewReader(qrCode))
	if err != nil {
		pdf.Cell(nil, "Failed to load QR code")
		return
	}

	rect := &gopdf.Rect{W: 100, H: 100}
	if err := pdf.ImageFrom(img, 100, pdf.GetY(), rect); err != nil {
		pdf.Cell(nil, "Failed to draw QR code")
	}
}

func addFooter(pdf *gopdf.GoPdf) {
	pdf.SetX(40)
	pdf.Cell(nil, "Tunjukkan tiket ini kepada petugas di pintu masuk.")
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
