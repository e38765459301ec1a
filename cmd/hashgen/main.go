// Утилита для генерации bcrypt-хеша пароля при заполнении файла пользователей.
package main

import (
	"fmt"
	"os"

	"github.com/magabrotheeeer/repair-orders/internal/lib/password"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashgen <password>")
		os.Exit(1)
	}

	hash, err := password.GetHash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
