package main

import (
	"context"
	"fmt"
	"os"
	"time"

	pixelheart "github.com/cydxin/pixelheart-sdk"
	"github.com/cydxin/pixelheart-sdk/config"
	"github.com/cydxin/pixelheart-sdk/store"
	"github.com/rs/zerolog"
)

// 进程内直连平台的客户端缓存演示：
//
//	PX_DEMO_USER=alice PX_DEMO_PASSWORD=secret go run ./example/client
//
// 第二次运行时，即使数据库不可用，也能先从本地缓存文件读到上次的数据。
func main() {
	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := cfg.OpenDB()
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	rdb, err := cfg.OpenRedis(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("open redis")
	}
	engine, err := pixelheart.NewEngine(pixelheart.WithDB(db), pixelheart.WithRDB(rdb), pixelheart.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
	defer engine.Close()

	local, err := store.NewSQLiteLocalStore(cfg.LocalStore)
	if err != nil {
		log.Fatal().Err(err).Msg("open local store")
	}
	defer local.Close()

	s := engine.NewStore("", store.WithLocalStore(local))
	defer s.Close()

	cancelWatch := s.OnChange(func() {
		log.Debug().Int("sets", len(s.Sets())).Int("chat", len(s.Chat())).Msg("state changed")
	})
	defer cancelWatch()

	s.Init(ctx)
	if msg := s.LastError(); msg != "" {
		log.Warn().Str("error", msg).Msg("init finished with error")
	}
	fmt.Printf("%d sets, %d series, %d chat messages\n", len(s.Sets()), len(s.Series()), len(s.Chat()))

	user, password := os.Getenv("PX_DEMO_USER"), os.Getenv("PX_DEMO_PASSWORD")
	if user == "" || rdb == nil {
		return
	}
	if err := s.Login(ctx, user, password); err != nil {
		log.Fatal().Err(err).Msg("login")
	}
	u, _ := s.CurrentUser()
	fmt.Printf("signed in as %s (admin=%v, %d saved photos)\n", u.Username, u.IsAdmin, len(u.SavedPhotos))

	if err := s.SendGlobalMessage(ctx, "hello from the client demo"); err != nil {
		log.Warn().Err(err).Msg("send chat")
	}
	for _, m := range s.Chat() {
		fmt.Printf("[%s] %s: %s\n", m.Timestamp.Format(time.Kitchen), m.Username, m.Text)
	}
}
