package healthcheck_head

// ReadinessProbe сообщает, готов ли компонент принимать работу
// (producer не закрыт, consumer group в цикле Consume и т.п.).
type ReadinessProbe interface {
	Ready() bool
}
