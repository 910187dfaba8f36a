package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/ui"
)

type campaignOutcome struct {
	summary campaign.Summary
	err     error
}

// runCampaignWithUI runs a campaign while a Bubble Tea progress view
// follows its events. The view closes when the campaign finishes; quitting
// the view early cancels the campaign.
func runCampaignWithUI(ctx context.Context, title string, build func(campaign.Sink) (*campaign.Driver, error)) (*campaign.Driver, campaign.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan campaign.Event, 256)
	d, err := build(campaign.ChannelSink{Ch: events})
	if err != nil {
		return nil, campaign.Summary{}, err
	}
	outcomeCh := make(chan campaignOutcome, 1)

	go func() {
		sum, err := d.Run(ctx)
		outcomeCh <- campaignOutcome{summary: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, d.Config().Trials, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	cancel()
	// the view may have quit early; keep the campaign from blocking on sends
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return d, outcome.summary, uiErr
	}
	return d, outcome.summary, outcome.err
}
