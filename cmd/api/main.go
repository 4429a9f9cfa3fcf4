package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "belavista-backend/internal/adapter/http"
	mw "belavista-backend/internal/adapter/middleware"
	"belavista-backend/internal/adapter/repository/mysql"
	"belavista-backend/internal/auth"
	"belavista-backend/internal/config"
	"belavista-backend/internal/domain/proposal"
	"belavista-backend/internal/domain/user"
	"belavista-backend/internal/infrastructure/cache"
	"belavista-backend/internal/infrastructure/db"
	"belavista-backend/internal/infrastructure/viacep"
	"belavista-backend/internal/usecase/inventory"
	proposalUC "belavista-backend/internal/usecase/proposal"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&user.User{}, &proposal.Proposal{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	proposals := mysql.NewProposalRepository(gdb)
	users := mysql.NewUserRepository(gdb)

	authSvc := auth.NewService(users, rdb, time.Duration(cfg.SessionTTLSecs)*time.Second)
	inv := inventory.NewService(proposals, cfg.TotalLots)
	props := proposalUC.NewService(proposals)
	props.OnSaved = inv.Patch
	props.OnChanged = inv.Refresh

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authSvc)
	lotH := httpadp.NewLotHandler(inv)
	propH := httpadp.NewProposalHandler(props, cfg.LotPrice)
	cepH := httpadp.NewCEPHandler(viacep.NewClient(cfg.ViaCEPBaseURL))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)
	e.POST("/auth/signup", authH.SignUp)
	e.POST("/auth/login", authH.SignIn)
	e.POST("/auth/forgot-password", authH.ForgotPassword)
	e.POST("/auth/reset-password", authH.ResetPassword)

	authed := e.Group("", mw.RequireSession(authSvc))
	authed.POST("/auth/logout", authH.SignOut)
	authed.GET("/auth/me", authH.Me)

	authed.GET("/lots", lotH.Grid)
	authed.DELETE("/lots/:number/proposal", propH.CancelByLot)

	authed.GET("/proposals", propH.List)
	authed.POST("/proposals", propH.Create)
	authed.POST("/proposals/quote", propH.Quote)
	authed.PUT("/proposals/:proposal_id", propH.Update)
	authed.DELETE("/proposals/:proposal_id", propH.Delete)
	authed.GET("/proposals/:proposal_id/document", propH.Document)

	authed.GET("/cep/:code", cepH.Lookup)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
