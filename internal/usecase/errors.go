package usecase

import "errors"

// DomainError é um erro de regra de negócio / estado; vira 4xx na borda HTTP.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha transitória ou de infraestrutura; vira 503.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	MsgInvalidEmail = "Formato de e-mail inválido."
	MsgSaveFailed   = "Falha ao salvar (simulada). Alterações revertidas."
)

var (
	ErrInvalidEmail   = &DomainError{Code: "INVALID_EMAIL", Message: MsgInvalidEmail}
	ErrSaveInProgress = &DomainError{Code: "SAVE_IN_PROGRESS", Message: "Já existe um salvamento em andamento."}
	ErrNoOpenSession  = &DomainError{Code: "NO_OPEN_SESSION", Message: "Nenhum lead aberto para edição."}
	ErrLeadNotFound   = &DomainError{Code: "LEAD_NOT_FOUND", Message: "Lead não encontrado."}
	ErrInvalidFilter  = &DomainError{Code: "INVALID_FILTER", Message: "Filtro de status inválido."}
	ErrDraftMismatch  = &DomainError{Code: "DRAFT_MISMATCH", Message: "O rascunho não corresponde ao lead aberto."}

	ErrSaveFailed = &TechnicalError{Code: "SAVE_FAILED", Message: MsgSaveFailed}
)
