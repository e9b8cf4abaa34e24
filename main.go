/*
Copyright © 2025 huduassist
*/
package main

import (
	"log"

	"github.com/huduassist/huduassist-be/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}
