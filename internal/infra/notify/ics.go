package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/room"

	"github.com/emersion/go-ical"
)

const (
	productID = "-//RoomBook//Booking Service//EN"
	uidDomain = "roombook.local"

	methodRequest = "REQUEST"
	methodCancel  = "CANCEL"
)

// BuildInvite renders a booking as an iCalendar REQUEST so mail clients
// offer an "add to calendar" action.
func BuildInvite(b *booking.Booking, rm *room.Room, organizerEmail, organizerName string) (string, error) {
	return buildICS(b, rm, organizerEmail, organizerName, methodRequest, "CONFIRMED", 0)
}

// BuildCancellation renders the CANCEL counterpart for an existing
// invite. The UID matches the original so clients remove the event, and
// SEQUENCE is bumped past the invite's.
func BuildCancellation(b *booking.Booking, rm *room.Room, organizerEmail, organizerName string) (string, error) {
	return buildICS(b, rm, organizerEmail, organizerName, methodCancel, "CANCELLED", 1)
}

func buildICS(b *booking.Booking, rm *room.Room, organizerEmail, organizerName, method, status string, sequence int) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropMethod, method)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", b.ID(), uidDomain))
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC().Truncate(time.Second))
	event.Props.SetDateTime(ical.PropDateTimeStart, b.Slot().Start().UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, b.Slot().End().UTC())
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("Room Booking: %s", roomLabel(b, rm)))
	event.Props.SetText(ical.PropStatus, status)

	seq := ical.NewProp(ical.PropSequence)
	seq.Value = strconv.Itoa(sequence)
	event.Props.Set(seq)

	if rm != nil {
		event.Props.SetText(ical.PropLocation, rm.Location())
		event.Props.SetText(ical.PropDescription,
			fmt.Sprintf("Conference room booking for %s (capacity %d).", rm.Name(), rm.Capacity()))
	}

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.Params.Set(ical.ParamCommonName, organizerName)
	organizer.Value = "mailto:" + organizerEmail
	event.Props.Set(organizer)

	attendee := ical.NewProp(ical.PropAttendee)
	attendee.Params.Set(ical.ParamRole, "REQ-PARTICIPANT")
	attendee.Params.Set(ical.ParamParticipationStatus, "NEEDS-ACTION")
	attendee.Params.Set(ical.ParamRSVP, "TRUE")
	attendee.Value = "mailto:" + b.UserEmail()
	event.Props.Set(attendee)

	if method == methodRequest {
		event.Children = append(event.Children, reminderAlarm())
	}

	cal.Children = append(cal.Children, event.Component)

	var buf strings.Builder
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.String(), nil
}

// reminderAlarm fires a display reminder 15 minutes before the booking
// starts.
func reminderAlarm() *ical.Component {
	alarm := &ical.Component{Name: ical.CompAlarm, Props: make(ical.Props)}
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, "Your room booking starts in 15 minutes")

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "-PT15M"
	alarm.Props.Set(trigger)

	return alarm
}

func roomLabel(b *booking.Booking, rm *room.Room) string {
	if rm != nil {
		return rm.Name()
	}
	return b.RoomID()
}
