package kafka

type MessageWriter = messageWriter

var NewPublisherWithWriter = newPublisher
