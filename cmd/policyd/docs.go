package main

// General API documentation for swaggo. Run `swag init -g cmd/policyd/docs.go` to regenerate docs/.
//
// @title           policyd API
// @version         1.0
// @description     Adapts robot observations into policy model inputs and decodes action sequences.
//
// @contact.name   policyd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
