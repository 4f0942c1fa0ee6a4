package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error hasil service/Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if IsUniqueViolation(err) {
		return JsonError(c, fiber.StatusConflict, "Duplicate record")
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ErrorHandler dipasang di fiber.Config agar error yang lolos dari handler
// tetap pakai envelope yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
