package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/config"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/prayer"
	"github.com/Nixie-Tech-LLC/baitulaman/internal/redis"
)

type NextCmd struct {
	Watch bool `short:"w" help:"Keep printing every second until interrupted."`
	Local bool `help:"Resolve from the built-in timetable even when Redis is configured."`
}

var (
	nameColor = color.New(color.FgGreen, color.Bold)
	timeColor = color.New(color.FgCyan)
	upColor   = color.New(color.FgRed, color.Bold)
)

func (n *NextCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A running server mirrors its live countdown into Redis; prefer that over the
	// seed timetable, which does not see admin edits.
	var cache *redis.NextPrayerCache
	if cfg.RedisAddress != "" && !n.Local {
		rdb, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err == nil {
			defer rdb.Close()
			cache = redis.NewNextPrayerCache(rdb, cfg.RedisKey, 0)
		}
	}

	current := func(local prayer.Next) model.NextPrayer {
		if cache != nil {
			if msg, err := cache.Get(ctx); err == nil {
				return msg
			}
		}
		return model.NewNextPrayer(local)
	}

	if !n.Watch {
		printNext(current(prayer.Resolve(store.GetSchedule(), cfg.Now())), false)
		return nil
	}

	err = prayer.NewTicker(time.Second, store.GetSchedule, cfg.Now).Run(ctx, func(next prayer.Next) {
		printNext(current(next), true)
	})
	fmt.Println()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printNext(msg model.NextPrayer, overwrite bool) {
	if overwrite {
		fmt.Print("\r\033[K")
	}
	remaining := timeColor.Sprint(msg.Remaining)
	if msg.TimeUp {
		remaining = upColor.Sprint(msg.Remaining)
	}
	fmt.Printf("%s at %s  %s", nameColor.Sprint(msg.Name), msg.Time, remaining)
	if !overwrite {
		fmt.Println()
	}
}
