// token emite un JWT de escritura para operadores, firmado con JWT_SECRET.
//
// Uso: go run ./cmd/token -user ops@example.com -role editor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del usuario (sub)")
	role := flag.String("role", jwt.RoleEditor, "rol: admin | editor")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "uso: token -user <id> [-role admin|editor]")
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleEditor {
		fmt.Fprintf(os.Stderr, "rol no soportado: %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
