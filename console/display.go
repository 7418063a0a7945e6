package console

import (
	"fmt"
	"io"
	"iter"
	"text/tabwriter"

	"railway-reservation/model"
)

func PrintTrains(w io.Writer, trains iter.Seq[model.Train]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Train Number\tTrain Name\tAvailable Seats")
	fmt.Fprintln(tw, "------------\t----------\t---------------")
	for t := range trains {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", t.Number, t.Name, t.AvailableSeats)
	}
	return tw.Flush()
}

func PrintBookings(w io.Writer, bookings iter.Seq[model.Booking]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Train No\tName\tAge\tStatus\tReason")
	fmt.Fprintln(tw, "--------\t----\t---\t------\t------")
	for b := range bookings {
		reason := b.CancellationReason
		if b.IsActive() {
			reason = "N/A"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", b.TrainNumber, b.PassengerName, b.PassengerAge, b.Status, reason)
	}
	return tw.Flush()
}
