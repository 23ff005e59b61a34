package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/tilesweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.ws, a.config.Game.Board(),
	)

	base := a.config.BasePath
	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game", game.List)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST "+base+"/game/{id}/reset", game.Reset)
	a.router.HandleFunc("DELETE "+base+"/game/{id}", game.Delete)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
}
