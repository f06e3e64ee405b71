package redis

import "fmt"

// Key prefix for all chat data
const keyPrefix = "batepapo"

// participantsKey returns the HASH of participant name -> participant JSON
func participantsKey() string {
	return fmt.Sprintf("%s:participants", keyPrefix)
}

// messagesKey returns the LIST of message JSON in insertion order
func messagesKey() string {
	return fmt.Sprintf("%s:messages", keyPrefix)
}
