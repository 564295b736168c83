package main

import (
	"net/http"

	"github.com/joeydtaylor/authdelegate/pkg/codec"
	"github.com/joeydtaylor/authdelegate/pkg/middleware/auth"
	"github.com/joeydtaylor/authdelegate/pkg/serverfx"
	"github.com/joeydtaylor/authdelegate/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type whoami struct {
	Subject       string `json:"subject"`
	Authenticated bool   `json:"authenticated"`
}

type routes struct {
	fx.In

	Protected httpx.Router `name:"protected"`
	Logger    *zap.Logger
}

func register(r routes) {
	r.Protected.Get("/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		body := whoami{Subject: auth.SubjectFrom(ctx), Authenticated: auth.IsAuthenticated(ctx)}
		if err := codec.Write(w, codec.JSON, http.StatusOK, body); err != nil {
			r.Logger.Warn("failed to write response", zap.Error(err))
		}
	}))
}

func main() {
	fx.New(
		serverfx.Module(serverfx.Options{}),
		fx.Invoke(register),
	).Run()
}
