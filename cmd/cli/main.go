package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chitramadarakhandi/minimart/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	name := addUserCmd.String("name", "", "Display name for the new user")
	email := addUserCmd.String("email", "", "Email for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")
	role := addUserCmd.String("role", "admin", "Role: admin or customer")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *name == "" || *email == "" || *password == "" {
			fmt.Println("name, email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		if *role != "admin" && *role != "customer" {
			fmt.Println("role must be admin or customer")
			os.Exit(1)
		}
		createUser(*name, *email, *password, *role)
	default:
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}
}

func createUser(name, email, password, role string) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./minimart.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running the cli before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(name, email, string(hashedPassword), role); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' (%s) created successfully.\n", email, role)
}
