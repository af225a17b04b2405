package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/restful-users/internal/auth"
)

// hash_password prints a .env line setting ADMIN_PASSWORD_HASH.
// Usage:
//
//	go run ./cmd/adminutil/hash_password -password 's3cret'
//	echo 's3cret' | go run ./cmd/adminutil/hash_password
func main() {
	password := flag.String("password", "", "Password to hash (read from stdin when empty)")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if *password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("usage: go run ./cmd/adminutil/hash_password -password <password>")
		}
		*password = strings.TrimRight(line, "\r\n")
	}
	if *password == "" {
		log.Fatalf("password must not be empty")
	}
	if *cost < bcrypt.MinCost || *cost > bcrypt.MaxCost {
		log.Fatalf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	hashed, err := auth.HashPassword(*password, *cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(envLine(hashed))
}

// envLine single-quotes the hash so godotenv does not expand its $ segments.
func envLine(hash string) string {
	return "ADMIN_PASSWORD_HASH='" + hash + "'"
}
