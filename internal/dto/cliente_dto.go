package dto

type CadastrarClienteRequest struct {
	UASG        string  `json:"uasg"         validate:"required,min=3,max=20"`
	NomeOrgaos  string  `json:"nome_orgaos"  validate:"required,min=2,max=200"`
	CNPJ        *string `json:"cnpj"         validate:"omitempty,min=14,max=18"`
	Endereco    *string `json:"endereco"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Observacoes *string `json:"observacoes"`
}

type ClienteResponse struct {
	UASG        string  `json:"uasg"`
	NomeOrgaos  string  `json:"nome_orgaos"`
	CNPJ        *string `json:"cnpj"`
	Endereco    *string `json:"endereco"`
	Telefone    *string `json:"telefone"`
	Email       *string `json:"email"`
	Observacoes *string `json:"observacoes"`
}
