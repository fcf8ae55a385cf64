package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lintel/internal/driver"
	"lintel/internal/ui"
)

type outcome[T any] struct {
	result T
	err    error
}

// runWithUI runs work on its own goroutine while the progress view reads
// its events. Quitting the view cancels the run; remaining events are
// drained so the worker never blocks on a full channel.
func runWithUI[T any](ctx context.Context, title string, files []string, work func(context.Context, driver.ProgressSink) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome[T], 1)
	go func() {
		res, err := work(ctx, driver.ChannelSink(events))
		close(events)
		outcomeCh <- outcome[T]{result: res, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	cancel()
	for range events {
	}
	out := <-outcomeCh
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}
