package tracking

// Milestone is one step of the order lifecycle as shown to the client.
type Milestone struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// Milestones is the fixed, ordered order lifecycle.
var Milestones = []Milestone{
	{Status: "AGUARDANDO_MECANICO", Label: "Waiting for mechanic"},
	{Status: "ACEITO", Label: "Accepted"},
	{Status: "AGUARDANDO_RESERVA_PECA", Label: "Part reservation pending"},
	{Status: "PECA_CONFIRMADA", Label: "Part confirmed"},
	{Status: "PECA_RETIRADA", Label: "Part collected"},
	{Status: "SERVICO_EM_ANDAMENTO", Label: "Service in progress"},
	{Status: "SERVICO_FINALIZADO", Label: "Service completed"},
	{Status: "PAGAMENTO_CONFIRMADO", Label: "Payment confirmed"},
}

// Step is a milestone rendered against the current status. Every milestone
// up to and including the current one is complete; the current one is also
// active. A step with neither flag is pending.
type Step struct {
	Milestone
	Complete bool `json:"complete"`
	Active   bool `json:"active"`
}

// CurrentIndex returns the position of status in Milestones. Unknown values
// map to 0.
func CurrentIndex(status string) int {
	for i, m := range Milestones {
		if m.Status == status {
			return i
		}
	}
	return 0
}

// Progress renders every milestone for status.
func Progress(status string) []Step {
	current := CurrentIndex(status)
	steps := make([]Step, len(Milestones))
	for i, m := range Milestones {
		steps[i] = Step{Milestone: m, Complete: i <= current, Active: i == current}
	}
	return steps
}
