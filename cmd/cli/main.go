// The cli tool covers the operational chores the API does not:
// creating accounts from a terminal and bulk-loading the shared
// historical price series from a CSV export.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/stockfolio/server/infra"
	infrarepository "github.com/stockfolio/server/infra/repository"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain/stock"
	usersvc "github.com/stockfolio/server/pkg/service/user"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  createuser <username> <email>   create an account (password prompted)")
	fmt.Println("  seed <file.csv>                 load historical candles")
}

func run(cmd string, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(infrarepository.Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	uow := infrarepository.NewUoW(db)
	ctx := context.Background()

	switch cmd {
	case "createuser":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("createuser needs a username and an email")
		}
		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		svc := usersvc.New(uow, slog.Default())
		u, err := svc.Signup(ctx, args[0], args[1], string(password))
		if err != nil {
			return err
		}
		color.Green("User created: %s <%s> (%s)", u.Username, u.Email, u.ID)
		return nil
	case "seed":
		if len(args) < 1 {
			usage()
			return fmt.Errorf("seed needs a CSV file")
		}
		count, err := seedHistorical(ctx, uow, args[0])
		if err != nil {
			return err
		}
		color.Green("Loaded %d candles from %s", count, args[0])
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// seedHistorical loads a CSV with the columns
// symbol,timestamp,open,high,low,close,volume. Rows already present
// are skipped.
func seedHistorical(ctx context.Context, uow *infrarepository.UoW, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	var candles []stock.Candle
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		c, err := parseRow(record)
		if err != nil {
			return 0, err
		}
		candles = append(candles, c)
	}
	if len(candles) == 0 {
		return 0, fmt.Errorf("no candles in %s", path)
	}
	repo, err := uow.StockRepository()
	if err != nil {
		return 0, err
	}
	if err := repo.SeedHistorical(ctx, candles); err != nil {
		return 0, err
	}
	return len(candles), nil
}

func parseRow(record []string) (stock.Candle, error) {
	if len(record) < 7 {
		return stock.Candle{}, fmt.Errorf("short CSV row: %v", record)
	}
	ts, err := time.Parse("2006-01-02", record[1])
	if err != nil {
		return stock.Candle{}, fmt.Errorf("bad timestamp %q: %w", record[1], err)
	}
	floats := make([]float64, 4)
	for i, raw := range record[2:6] {
		floats[i], err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return stock.Candle{}, fmt.Errorf("bad price %q: %w", raw, err)
		}
	}
	volume, err := strconv.ParseInt(record[6], 10, 64)
	if err != nil {
		return stock.Candle{}, fmt.Errorf("bad volume %q: %w", record[6], err)
	}
	return stock.Candle{
		Symbol:    record[0],
		Timestamp: ts,
		Open:      floats[0],
		High:      floats[1],
		Low:       floats[2],
		Close:     floats[3],
		Volume:    volume,
	}, nil
}
