package checkinpass

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"
)

// Pass is the payload encoded into a check-in QR code. Volunteers scan it
// at the venue instead of typing the student id.
type Pass struct {
	EventID   int64     `json:"event_id"`
	StudentID string    `json:"student_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

func NewPass(eventID int64, studentID string) Pass {
	return Pass{EventID: eventID, StudentID: studentID, IssuedAt: time.Now()}
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateEncryptedQR returns a PNG QR code holding the AES-encrypted pass.
func (g *Generator) GenerateEncryptedQR(pass Pass) ([]byte, error) {
	data, err := json.Marshal(pass)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
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
