// distribute ejecuta una ronda de distribución contra la API a partir de un plan JSON.
//
// Uso:
//
//	DISTRIBUCION_PASSWORD=... go run ./cmd/distribute -url http://localhost:8080 \
//	    -company Acme -user mgr1 -plan ronda.json [-dry-run]
//
// Toma la foto de existencias, arma la ronda con la misma sesión que usa el asistente,
// muestra el resumen y confirma. Si un envío falla, los anteriores quedan registrados.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/jhoicas/Distribucion-api/internal/application/allocation"
	"github.com/jhoicas/Distribucion-api/internal/application/dto"
	"github.com/jhoicas/Distribucion-api/pkg/client"
	"github.com/jhoicas/Distribucion-api/pkg/logger"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "URL base de la API")
		company  = flag.String("company", "", "nombre de la empresa")
		user     = flag.String("user", "", "user_id del manager")
		planPath = flag.String("plan", "", "archivo JSON con la ronda")
		dryRun   = flag.Bool("dry-run", false, "solo mostrar el resumen, sin enviar")
	)
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	password := os.Getenv("DISTRIBUCION_PASSWORD")
	if *company == "" || *user == "" || *planPath == "" || password == "" {
		flag.Usage()
		log.Fatal().Msg("faltan -company, -user, -plan o DISTRIBUCION_PASSWORD")
	}

	f, err := os.Open(*planPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir plan")
	}
	p, err := readPlan(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("plan inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(*baseURL)
	if _, err := c.Login(ctx, dto.LoginRequest{CompanyName: *company, UserID: *user, Password: password}); err != nil {
		log.Fatal().Err(err).Msg("login")
	}

	snapshot, err := c.AvailableStock(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("leer existencias")
	}
	session := allocation.NewSession(snapshot)
	if err := p.apply(session); err != nil {
		log.Fatal().Err(err).Msg("armar ronda")
	}

	printSummary(session.Summary())
	if *dryRun {
		log.Info().Msg("dry-run: no se envió nada")
		return
	}

	if err := session.Confirm(ctx, c); err != nil {
		log.Error().
			Err(session.LastError()).
			Int("enviados", session.Submitted()).
			Int("trabajadores", session.WorkerCount()).
			Msg("ronda incompleta; al reintentar se saltan los ya enviados")
		os.Exit(1)
	}
	log.Info().Int("trabajadores", len(p.Workers)).Msg("ronda registrada")

	// Existencias según el servidor tras la ronda
	fresh, err := c.AvailableStock(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudieron recargar las existencias")
		return
	}
	session.Restart(fresh)
	log.Info().Int("productos_disponibles", len(session.AvailableProducts())).Msg("existencias recargadas")
}

func printSummary(s allocation.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRABAJADOR\tGÉNERO\tLÍNEAS\tUNIDADES")
	for _, wk := range s.Workers {
		var units int64
		for _, l := range wk.Lines {
			units += l.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", wk.Name, wk.Gender, len(wk.Lines), units)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PRODUCTO\tENTREGADO\tQUEDA")
	for _, p := range s.Products {
		fmt.Fprintf(w, "%s\t%d\t%d\n", p.Name, p.Distributed, p.RemainingAfter)
	}
	_ = w.Flush()
}
