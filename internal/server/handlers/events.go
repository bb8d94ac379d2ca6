package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/hussein34535/waledapi/internal/events"
)

// AccountsEvents streams the full account collection over SSE, once on
// connect and again after every mutation.
func (h *Handlers) AccountsEvents(c *fiber.Ctx) error {
	return h.stream(c, events.KindAccounts, func() (interface{}, error) {
		return h.Store.ListAccounts("")
	})
}

// SNIEvents is the SNI counterpart of AccountsEvents.
func (h *Handlers) SNIEvents(c *fiber.Ctx) error {
	return h.stream(c, events.KindSNI, func() (interface{}, error) {
		return h.Store.ListSNI()
	})
}

// stream writes snapshot events until the client goes away. Subscribers
// always see the latest state; intermediate snapshots may be coalesced.
func (h *Handlers) stream(c *fiber.Ctx, kind events.Kind, snapshot func() (interface{}, error)) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ch, cancel := h.Hub.Subscribe(kind)
	ctx := c.Context()

	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		write := func() bool {
			data, err := snapshot()
			if err != nil {
				logrus.WithError(err).Error("snapshot read failed, closing stream")
				return false
			}
			payload, err := json.Marshal(data)
			if err != nil {
				return false
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
				return false
			}
			return w.Flush() == nil
		}

		if !write() {
			return
		}

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				if !write() {
					return
				}
			case <-keepalive.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
