package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pkg/errors"

	"github.com/aarondwi/fairqueue"
	"github.com/aarondwi/fairqueue/common"
)

// Item is what the shell queues: a label owned by a chat user.
type Item = fairqueue.QItem[snowflake.ID, string]

// Queue is the part of the engine the shell drives.
type Queue interface {
	Submit(ctx context.Context, requester snowflake.ID, label string) (*fairqueue.Receipt, error)
	SubmitBatch(ctx context.Context, requester snowflake.ID, labels []string) (*fairqueue.Receipt, error)
	SubmitItems(ctx context.Context, items []Item) (*fairqueue.Receipt, error)
	List() []Item
	Clear(ctx context.Context)
	Next() (Item, bool)
}

// unattributed is the requester token for items without a known requester.
const unattributed = "?"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad usage")
)

// Shell runs fair queue commands given as text lines, one response per line.
type Shell struct {
	Queue     Queue
	SizeLimit int
}

// Execute runs one command and returns the message to show.
// Returned errors are usage problems; queue rejections come back as messages.
func (s *Shell) Execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return s.list(), nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "add":
		if len(args) < 2 {
			return "", errors.Wrap(ErrUsage, "add <requester> <label>")
		}
		return s.add(ctx, args[0], strings.Join(args[1:], " "))
	case "addmany":
		if len(args) < 2 {
			return "", errors.Wrap(ErrUsage, "addmany <requester> <label>[, <label>...]")
		}
		return s.addMany(ctx, args[0], splitLabels(strings.Join(args[1:], " ")))
	case "list":
		return s.list(), nil
	case "clear":
		s.Queue.Clear(ctx)
		return "The fair queue has been cleared.", nil
	case "next":
		item, ok := s.Queue.Next()
		if !ok {
			return "Nothing to play.", nil
		}
		return fmt.Sprintf("Now playing '%s' for %s.", item.Payload(), mention(item)), nil
	default:
		return "", errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
}

func (s *Shell) add(ctx context.Context, requester, label string) (string, error) {
	if requester == unattributed {
		receipt, err := s.Queue.SubmitItems(ctx, []Item{fairqueue.NewUnattributedQItem[snowflake.ID](label)})
		if err != nil {
			return s.rejection(err)
		}
		return fmt.Sprintf("Queued '%s' at position %d.", label, receipt.Position()+1), nil
	}

	id, err := parseRequester(requester)
	if err != nil {
		return "", err
	}
	receipt, err := s.Queue.Submit(ctx, id, label)
	if err != nil {
		return s.rejection(err)
	}
	return fmt.Sprintf("Queued '%s' for <@%s> at position %d.", label, id, receipt.Position()+1), nil
}

func (s *Shell) addMany(ctx context.Context, requester string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", errors.Wrap(ErrUsage, "addmany needs at least one label")
	}

	var receipt *fairqueue.Receipt
	var err error
	who := ""
	if requester == unattributed {
		items := make([]Item, len(labels))
		for i, label := range labels {
			items[i] = fairqueue.NewUnattributedQItem[snowflake.ID](label)
		}
		receipt, err = s.Queue.SubmitItems(ctx, items)
	} else {
		id, perr := parseRequester(requester)
		if perr != nil {
			return "", perr
		}
		who = fmt.Sprintf(" for <@%s>", id)
		receipt, err = s.Queue.SubmitBatch(ctx, id, labels)
	}
	if err != nil {
		return s.rejection(err)
	}
	return fmt.Sprintf("Queued %d items%s starting at position %d.", receipt.Len(), who, receipt.Position()+1), nil
}

func (s *Shell) list() string {
	items := s.Queue.List()
	if len(items) == 0 {
		return "The fair queue is empty."
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s — %s", i+1, mention(item), item.Payload())
	}
	return strings.Join(lines, "\n")
}

func (s *Shell) rejection(err error) (string, error) {
	switch {
	case errors.Is(err, common.ErrQueueIsFull):
		return fmt.Sprintf("The queue is full (limit %d); nothing was added.", s.SizeLimit), nil
	case errors.Is(err, common.ErrQueueIsClosed):
		return "The queue is closed.", nil
	default:
		return "", err
	}
}

// Run executes every line read from in, writing responses to out, until EOF or `quit`.
// Usage errors are reported on out and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		msg, err := s.Execute(ctx, line)
		if err != nil {
			msg = "error: " + err.Error()
		}
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return errors.Wrap(err, "writing response")
		}
	}
	return errors.Wrap(scanner.Err(), "reading commands")
}

func mention(item Item) string {
	id, ok := item.RequesterID()
	if !ok {
		return "(unknown)"
	}
	return fmt.Sprintf("<@%s>", id)
}

// parseRequester accepts a raw snowflake or a chat mention like <@123> or <@!123>.
func parseRequester(token string) (snowflake.ID, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(token, "<@"), "!"), ">")
	id, err := snowflake.Parse(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrUsage, "requester %q is not a user id", token)
	}
	return id, nil
}

func splitLabels(s string) []string {
	var labels []string
	for _, part := range strings.Split(s, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
