package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"obra-connect.backend/pkg/crypto"
)

var (
	stdout         io.Writer = os.Stdout
	getenv                   = os.Getenv
	generateHashFn           = crypto.HashPassword
	fatalfFn                 = log.Fatalf
)

// resolvePassword takes the first argument, falling back to ADMIN_PASSWORD
func resolvePassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := getenv("ADMIN_PASSWORD"); p != "" {
		return p, nil
	}
	return "", errors.New("usage: hash-gen <password> (or set ADMIN_PASSWORD)")
}

func run(args []string) error {
	password, err := resolvePassword(args)
	if err != nil {
		return err
	}
	if len(password) < 6 {
		return errors.New("password must have at least 6 characters")
	}
	hash, err := generateHashFn(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if !crypto.CheckPassword(password, hash) {
		return errors.New("generated hash does not verify")
	}
	_, _ = fmt.Fprintln(stdout, hash)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("%v", err)
	}
}
