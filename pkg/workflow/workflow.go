package workflow

import (
	"fmt"
	"strings"
	"time"
)

// Status representa o resultado de um passo do fluxo
type Status string

const (
	StatusOK      Status = "ok"      // Passo concluído
	StatusFailed  Status = "failed"  // Passo falhou
	StatusSkipped Status = "skipped" // Passo não se aplicava
)

// Step registra a execução de um passo do fluxo
type Step struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Record acumula os passos executados por um fluxo de múltiplas chamadas ao
// banco. As mutações do fluxo de venda NÃO rodam dentro de uma transação
// única: cada passo é uma chamada independente, e quando um passo lateral
// falha depois de o registro principal ter sido gravado, nada é desfeito.
// O Record existe para que esse resultado parcial fique visível no log e
// possa ser reconciliado manualmente.
type Record struct {
	Workflow  string    `json:"workflow"`
	StartedAt time.Time `json:"started_at"`
	Steps     []Step    `json:"steps"`
}

// NewRecord cria um novo registro de fluxo
func NewRecord(name string) *Record {
	return &Record{
		Workflow:  name,
		StartedAt: time.Now(),
	}
}

// StepOK registra um passo concluído
func (r *Record) StepOK(name string) {
	r.Steps = append(r.Steps, Step{Name: name, Status: StatusOK})
}

// StepFailed registra um passo que falhou
func (r *Record) StepFailed(name string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	r.Steps = append(r.Steps, Step{Name: name, Status: StatusFailed, Detail: detail})
}

// StepSkipped registra um passo que não se aplicava
func (r *Record) StepSkipped(name string) {
	r.Steps = append(r.Steps, Step{Name: name, Status: StatusSkipped})
}

// HasFailures verifica se algum passo falhou
func (r *Record) HasFailures() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Failures retorna os passos que falharam
func (r *Record) Failures() []Step {
	var failed []Step
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// String resume o registro em uma linha, para log
func (r *Record) String() string {
	parts := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Status == StatusFailed {
			parts = append(parts, fmt.Sprintf("%s=%s(%s)", s.Name, s.Status, s.Detail))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", s.Name, s.Status))
	}
	return fmt.Sprintf("%s: %s", r.Workflow, strings.Join(parts, " "))
}
