// seed carga un catálogo (categorías y productos) desde un CSV usando la misma configuración
// de base de datos que la API.
//
// Uso: go run ./cmd/seed [-encoding latin1] ruta/catalogo.csv
// Cabecera esperada: category,name,price[,description,image,stock_quantity,featured]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/infrastructure/persistence"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8 | latin1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-encoding latin1] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	r, err := decodeReader(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}

	ctx := context.Background()
	store, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()
	if err := persistence.Migrate(ctx, store.DB); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	res, err := usecase.NewImportUseCase(persistence.NewTxRunner(store.DB)).Import(ctx, r)
	if err != nil {
		log.Error().Err(err).Msg("importación cancelada, no se confirmó ningún cambio")
		return
	}
	log.Info().Int("categorias", res.Categories).Int("productos", res.Products).Msg("catálogo importado")
}

// decodeReader traduce a UTF-8. Los CSV exportados desde hojas de cálculo suelen venir en
// ISO-8859-1; en UTF-8 se descarta el BOM si lo hay.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8", "":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", encoding)
}
