package database

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"railway-reservation/model"
)

const (
	TrainsHeader   = "TrainNumber,TrainName,AvailableSeats"
	BookingsHeader = "TrainNumber,PassengerName,Age,Status,CancellationReason"
)

// Rows are split on raw commas with no quoting. The last column takes the rest
// of the line, so only it may contain commas.

func EncodeTrains(w io.Writer, trains []model.Train) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, TrainsHeader)
	for _, t := range trains {
		fmt.Fprintf(bw, "%d,%s,%d\n", t.Number, t.Name, t.AvailableSeats)
	}
	return bw.Flush()
}

func EncodeBookings(w io.Writer, bookings []model.Booking) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, BookingsHeader)
	for _, b := range bookings {
		fmt.Fprintf(bw, "%d,%s,%d,%s,%s\n",
			b.TrainNumber, b.PassengerName, b.PassengerAge, b.Status, b.CancellationReason)
	}
	return bw.Flush()
}

func DecodeTrains(r io.Reader, source string) ([]model.Train, error) {
	trains := []model.Train{}
	err := decodeRows(r, source, TrainsHeader, 3, func(cols []string) error {
		number, err := parseInt("train number", cols[0])
		if err != nil {
			return err
		}
		seats, err := parseInt("available seats", cols[2])
		if err != nil {
			return err
		}
		trains = append(trains, model.Train{Number: number, Name: cols[1], AvailableSeats: seats})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trains, nil
}

func DecodeBookings(r io.Reader, source string) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := decodeRows(r, source, BookingsHeader, 5, func(cols []string) error {
		number, err := parseInt("train number", cols[0])
		if err != nil {
			return err
		}
		age, err := parseInt("age", cols[2])
		if err != nil {
			return err
		}
		status, err := model.ParseBookingStatus(cols[3])
		if err != nil {
			return err
		}
		bookings = append(bookings, model.Booking{
			TrainNumber:        number,
			PassengerName:      cols[1],
			PassengerAge:       age,
			Status:             status,
			CancellationReason: cols[4],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func decodeRows(r io.Reader, source, header string, fields int, parse func([]string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
			if text != header {
				return fmt.Errorf("%w: %s line 1: unexpected header %q", ErrMalformedRecord, source, text)
			}
			continue
		}
		if text == "" {
			continue
		}

		cols := strings.SplitN(text, ",", fields)
		if len(cols) != fields {
			return fmt.Errorf("%w: %s line %d: expected %d fields, got %d",
				ErrMalformedRecord, source, line, fields, len(cols))
		}
		if err := parse(cols); err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrMalformedRecord, source, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	return nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", field, value)
	}
	return n, nil
}
