package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the given origins; an empty list allows any origin without
// credentials.
func CORS(origins string) fiber.Handler {
	if origins == "" {
		return cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,POST,DELETE,OPTIONS",
			AllowHeaders: "Content-Type,Accept,Authorization,X-Request-ID",
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: true,
	})
}
