package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mgandara/pizzastore/internal/cli"
	"github.com/mgandara/pizzastore/internal/config"
	"github.com/mgandara/pizzastore/internal/db"
	"github.com/mgandara/pizzastore/internal/item"
	"github.com/mgandara/pizzastore/internal/order"
	"github.com/mgandara/pizzastore/internal/store"
	"github.com/mgandara/pizzastore/internal/user"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dbname> <port> <user>\n", os.Args[0])
		os.Exit(1)
	}
	dbname, port, dbuser := os.Args[1], os.Args[2], os.Args[3]

	cfg := config.Load()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableLevelTruncation: true})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx := context.Background()

	fmt.Print("Connecting to database...")
	gw, err := db.Connect(ctx, cfg.DSN(dbname, port, dbuser), log)
	if err != nil {
		fmt.Println()
		log.WithError(err).Error("unable to connect to database")
		os.Exit(1)
	}
	fmt.Println("Done")
	defer func() {
		fmt.Print("Disconnecting from database...")
		if err := gw.Close(ctx); err != nil {
			log.WithError(err).Warn("close connection")
		}
		fmt.Println("Done\n\nBye !")
	}()

	users := user.NewService(user.NewGatewayRepo(gw), log)
	items := item.NewService(item.NewGatewayRepo(gw), users, log)
	stores := store.NewGatewayRepo(gw)
	orders := order.NewService(order.NewGatewayRepo(gw), items, users, log)

	app := cli.NewApp(users, items, stores, orders, os.Stdin, os.Stdout, log)
	app.Run(ctx)
}
