package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"railway-reservation/ledger"
)

var (
	errInputClosed   = errors.New("input closed")
	errInvalidNumber = errors.New("invalid number")
)

const menu = `
--- Railway Reservation System ---
1. Add Train
2. View Trains
3. Book Ticket
4. Cancel Ticket
5. View All Tickets
6. Exit
`

// Console is the interactive operator menu. It reads one field per line.
type Console struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
}

func New(l *ledger.Ledger, in io.Reader, out io.Writer) *Console {
	return &Console{ledger: l, in: bufio.NewScanner(in), out: out}
}

// Run serves the menu until the operator exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, menu)
		choice, err := c.prompt("Enter choice: ")
		if err == nil {
			switch strings.TrimSpace(choice) {
			case "1":
				err = c.addTrain(ctx)
			case "2":
				err = PrintTrains(c.out, c.ledger.Trains())
			case "3":
				err = c.bookTicket(ctx)
			case "4":
				err = c.cancelTicket(ctx)
			case "5":
				err = PrintBookings(c.out, c.ledger.Bookings())
			case "6":
				return nil
			default:
				fmt.Fprintln(c.out, "Invalid choice.")
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, errInvalidNumber):
			fmt.Fprintln(c.out, "Invalid number.")
		case errors.Is(err, errInputClosed):
			return nil
		default:
			return err
		}
	}
}

func (c *Console) addTrain(ctx context.Context) error {
	number, err := c.promptInt("Train Number: ")
	if err != nil {
		return err
	}
	name, err := c.prompt("Train Name: ")
	if err != nil {
		return err
	}
	seats, err := c.promptInt("Seats: ")
	if err != nil {
		return err
	}

	_, err = c.ledger.AddTrain(ctx, number, strings.TrimSpace(name), seats)
	c.report(err, "Train added successfully.")
	return nil
}

func (c *Console) bookTicket(ctx context.Context) error {
	number, err := c.promptInt("Enter Train Number: ")
	if err != nil {
		return err
	}

	train, ok := c.ledger.Train(number)
	if !ok {
		c.report(ledger.ErrTrainNotFound, "")
		return nil
	}
	if train.AvailableSeats <= 0 {
		c.report(ledger.ErrNoSeatsAvailable, "")
		return nil
	}

	name, err := c.prompt("Enter Passenger Name: ")
	if err != nil {
		return err
	}
	age, err := c.promptInt("Enter Passenger Age: ")
	if err != nil {
		return err
	}

	_, err = c.ledger.BookTicket(ctx, number, strings.TrimSpace(name), age)
	c.report(err, "Ticket booked successfully!")
	return nil
}

func (c *Console) cancelTicket(ctx context.Context) error {
	name, err := c.prompt("Passenger Name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	age, err := c.promptInt("Age: ")
	if err != nil {
		return err
	}

	matches := c.ledger.ActiveBookings(name, age)
	if len(matches) == 0 {
		c.report(ledger.ErrBookingNotFound, "")
		return nil
	}

	reason, err := c.prompt("Enter cancellation reason: ")
	if err != nil {
		return err
	}

	cancelled, err := c.ledger.CancelTicket(ctx, name, age, strings.TrimSpace(reason))
	msg := "Ticket cancelled."
	if len(cancelled) > 1 {
		msg = fmt.Sprintf("%d tickets cancelled.", len(cancelled))
	}
	c.report(err, msg)
	return nil
}

func (c *Console) report(err error, done string) {
	switch {
	case err == nil:
		fmt.Fprintln(c.out, done)
	case errors.Is(err, ledger.ErrTrainNotFound):
		fmt.Fprintln(c.out, "Train not found.")
	case errors.Is(err, ledger.ErrNoSeatsAvailable):
		fmt.Fprintln(c.out, "No seats available.")
	case errors.Is(err, ledger.ErrBookingNotFound):
		fmt.Fprintln(c.out, "Booking not found.")
	case errors.Is(err, ledger.ErrInvalidInput):
		fmt.Fprintf(c.out, "Rejected: %v\n", err)
	case errors.Is(err, ledger.ErrSnapshot):
		fmt.Fprintln(c.out, done)
		fmt.Fprintf(c.out, "Warning: change not saved to disk: %v\n", err)
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSuffix(c.in.Text(), "\r"), nil
}

func (c *Console) promptInt(label string) (int, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}
