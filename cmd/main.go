package main

import (
	"edu-platform-api/app"
)

// @title           Education Platform API
// @version         1.0
// @description     Session authentication service for the education platform.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /
func main() {
	app.Run()
}
