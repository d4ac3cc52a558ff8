package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ryank30/Cosmic-Eidex/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}
	accountsFile := "accounts.json"
	if v := os.Getenv("ACCOUNTS_FILE"); v != "" {
		accountsFile = v
	}

	accounts, err := server.NewAccountStore(accountsFile)
	if err != nil {
		log.WithError(err).Fatal("open account store")
	}

	srv := server.New(accounts, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
