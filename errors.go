package discordhook

import "errors"

// ErrMissingConnectionID indicates that no connection ID was supplied, so neither
// a token nor a target endpoint can be resolved.
var ErrMissingConnectionID = errors.New("no connection ID is supplied")

// ErrConnectionNotFound indicates that a ConnectionStore holds no connection with the given ID.
var ErrConnectionNotFound = errors.New("connection not found")

// ErrMissingConnectionStore indicates that no ConnectionStore was given on construction.
var ErrMissingConnectionStore = errors.New("a ConnectionStore must be provided")

// ErrMissingToken indicates that the resolved connection holds neither a password
// nor a bot_token extra field.
var ErrMissingToken = errors.New("connection has neither a password nor a bot_token extra field")

// ErrMissingEndpoint indicates that no explicit channel was given and the resolved
// connection's extra configuration holds neither a channel nor an endpoint field.
var ErrMissingEndpoint = errors.New("no explicit channel is given and connection extra configuration has neither a channel nor an endpoint field")

// ErrMessageTooLong indicates that the message content exceeds Discord's length limit.
var ErrMessageTooLong = errors.New("message length must be 2000 or fewer characters")
