package util

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// 숫자 0/1, 알파벳 O/I 등 헷갈리는 문자는 제외
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateOrderNumber returns an order number like "PB-20260901-7F3K9Q".
func GenerateOrderNumber() string {
	return fmt.Sprintf("PB-%s-%s", time.Now().Format("20060102"), randomString(6))
}

// GenerateVoucherCode returns a grouped voucher code like "K9Q2-7F3M-PW4X".
func GenerateVoucherCode() string {
	groups := make([]string, 3)
	for i := range groups {
		groups[i] = randomString(4)
	}
	return strings.Join(groups, "-")
}

func randomString(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 실패 시 시간 기반 폴백
		return fmt.Sprintf("%0*d", n, time.Now().UnixNano()%1000000)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
