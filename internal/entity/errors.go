package entity

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrAuthFailed     = errors.New("invalid credentials")
	ErrNotFound       = errors.New("record not found")
	ErrClientNotFound = errors.New("client not found")
	ErrOrderNotFound  = errors.New("service order not found")
	ErrClientLinked   = errors.New("client referenced by a service order")
	ErrInvalidStatus  = errors.New("invalid service order status")
	ErrInvalidCPF     = errors.New("invalid cpf")
	ErrInvalidCNPJ    = errors.New("invalid cnpj")
	ErrInvalidNFSLink = errors.New("invalid nfs-e link")
	ErrMissingField   = errors.New("missing required field")
	ErrPasswordsDiff  = errors.New("passwords do not match")
	ErrNoClients      = errors.New("no registered clients")
	ErrValidation     = errors.New("validation failed")
	ErrPersistence    = errors.New("snapshot persistence failed")
	ErrInvalidBackup  = errors.New("invalid backup format")
)

const (
	ErrMsgInternal      = "Erro interno do servidor"
	ErrMsgBadRequest    = "Requisição inválida"
	ErrMsgValidation    = "Erro de validação"
	ErrMsgUnauthorized  = "Autenticação necessária"
	ErrMsgForbidden     = "Seu nível de acesso não permite esta operação"
	ErrMsgAuthFailed    = "Usuário ou senha incorretos"
	ErrMsgClientLinked  = "Cliente vinculado a uma Ordem de Serviço!"
	ErrMsgNotFound      = "Registro não encontrado"
	ErrMsgInvalidBackup = "Formato de backup inválido"
	ErrMsgPersistence   = "Falha ao gravar os dados no disco"
)
