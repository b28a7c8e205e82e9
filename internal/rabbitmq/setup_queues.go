package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetTrainingQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "trainings.requests", RoutingKey: "request"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
