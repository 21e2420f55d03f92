package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/db"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/operation"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/rabbitmq"
)

type Options struct {
	Host string `doc:"Hostname to listen on."`
	Port int    `doc:"Port to listen on." short:"p" default:"8000"`
}

// connectBroker opens a channel to RabbitMQ and declares the events
// exchange. The broker is optional: without RABBITMQ_URL, or if the dial
// fails, the API runs with event publishing disabled.
func connectBroker() *amqp.Channel {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		return nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
		return nil
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open RabbitMQ channel, events disabled: %v", err)
		return nil
	}

	if err := ch.ExchangeDeclare("events", "topic", true, false, false, false, nil); err != nil {
		log.Printf("Failed to declare events exchange, events disabled: %v", err)
		return nil
	}

	return ch
}

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		dbConn := db.Init()
		pub := rabbitmq.NewPublisher(connectBroker())

		router := chi.NewMux()
		api := humachi.New(router, huma.DefaultConfig("E-commerce API", "1.0.0"))

		operation.RegisterHomeRoute(api)
		operation.RegisterUsersRoutes(api, dbConn, pub)
		operation.RegisterProductsRoutes(api, dbConn, pub)
		operation.RegisterOrdersRoutes(api, dbConn, pub)

		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
			Handler: router,
		}

		hooks.OnStart(func() {
			log.Printf("Listening on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("server error:", err)
			}
		})

		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Printf("Shutdown error: %v", err)
			}
		})
	})

	cli.Run()
}
