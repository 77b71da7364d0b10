package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/minsoo-kang/receiptkit/receipt"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 240, G: 240, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testTransactions(t *testing.T) receipt.Transactions {
	t.Helper()
	img := testPNG(t, 40, 60)
	return receipt.Transactions{
		{
			Filename:    "hana.png",
			Time:        time.Date(2026, 1, 31, 14, 59, 0, 0, time.Local),
			Merchant:    "스타벅스 역삼점",
			Amount:      12900,
			ExpenseType: "Business meal(业务餐)",
			Image:       img,
		},
		{
			Filename: "naver.png",
			Time:     time.Date(2026, 2, 2, 9, 30, 0, 0, time.Local),
			Merchant: "한국물류",
			Amount:   43489,
			Image:    img,
		},
	}
}
