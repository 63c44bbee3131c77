package dialogue

const (
	msgHelp     = "Welcome! You can ask me to book a flight, check a flight status, or cancel a booking. How can I help?"
	msgHandoff  = "I'm connecting you with a human agent now. Please stay on the line."
	msgAnything = "Can I help with anything else?"

	msgBookingIntro = "Of course! I can help with a booking."
	msgStatusIntro  = "Sure, I can check your flight status."
	msgCancelIntro  = "Okay, I can assist with a cancellation."

	msgAskPNRForStatus = "What is your PNR?"
	msgAskPNRForCancel = "Please tell me the PNR for the booking."
	msgAskLastName     = "Thank you. And what is the last name on the booking?"

	msgPNRNotFound  = "I'm sorry, I couldn't find a booking with that PNR. Please check the reference and start again."
	msgNameMismatch = "I'm sorry, the last name doesn't match the booking for that PNR. Please check the details and start again."

	msgAskFlightID       = "Please tell me the flight ID you'd like to book, or say 'cheapest'."
	msgAskPayment        = "Shall I confirm the payment and complete the booking?"
	msgBookingAbandoned  = "No problem, I have not made the booking."
	msgAskCancelConfirm  = "Do you want to proceed with the cancellation?"
	msgNotCancelled      = "Okay, I have not cancelled your booking."
	msgAskRefundMethod   = "Understood. Would you like the refund to your original payment method, or as a travel voucher?"
	msgOfferRebooking    = "I'm sorry your flight was cancelled. Would you like to book a new one? Where will you be flying from?"
	msgStatusSMS         = "I've also sent these details to you by SMS."
	msgAskDifferentRoute = "Would you like to try a different route? Where will you be flying from?"
)
