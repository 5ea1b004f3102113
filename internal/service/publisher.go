package service

// Publisher is the slice of the MQ publisher the services need. Event
// publication is advisory: a publish failure is logged, never surfaced
// to the submitting user.
type Publisher interface {
	Publish(routingKey string, payload any) error
}
