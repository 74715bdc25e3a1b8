package utils

import (
	"time"

	"github.com/mojocn/base64Captcha"
)

var captchaStore = NewCaptchaStore(10 * time.Minute)

// GenerateCaptcha creates a digit captcha and returns its id plus a data URI
// for the client to render.
func GenerateCaptcha() (string, string, error) {
	driver := base64Captcha.NewDriverDigit(40, 120, 5, 0.7, 80)
	c := base64Captcha.NewCaptcha(driver, captchaStore)
	id, b64, _, err := c.Generate()
	return id, b64, err
}

// VerifyCaptcha checks the answer and consumes the captcha on success.
func VerifyCaptcha(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return captchaStore.Verify(id, answer, true)
}

// VerifyCaptchaNoConsume checks the answer without consuming it, for
// client-side validation before submit.
func VerifyCaptchaNoConsume(id, answer string) bool {
	if id == "" || answer == "" {
		return false
	}
	return captchaStore.Verify(id, answer, false)
}
