// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command genkey prints a random value for ADMIN_KEY.
package main

import (
	"fmt"
	"os"

	"github.com/danielhkuo/gala-live/auth"
)

func main() {
	key, err := auth.GenerateAdminKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("ADMIN_KEY=%s\n", key)
}
