package importer

import (
	"strings"
	"time"
)

// CategoryGeneral and CategoryLeave tag particularity drafts by origin column.
const (
	CategoryGeneral = "Geral"
	CategoryLeave   = "Licenças"
)

// UnionDraft carries the attributes used when a union has to be created.
type UnionDraft struct {
	Nome     string
	CNPJ     string
	Site     string
	DataBase *time.Time
	Estado   string
}

// AgreementDraft is the normalized agreement portion of one input record.
type AgreementDraft struct {
	Union             UnionDraft
	Titulo            string
	Tipo              string
	Estado            string
	DataBase          *time.Time
	VigenciaInicio    *time.Time
	VigenciaFim       *time.Time
	ValeRefeicao      string
	AssistenciaMedica bool
	SeguroDeVida      bool
	Uniforme          bool
	AdicionalNoturno  string
}

// SalaryFloorDraft groups the job role and its salary terms from one record.
// Pointer fields are nil when the source value was absent or unparseable.
type SalaryFloorDraft struct {
	Cargo             string
	CargaHoraria      string
	CBO               string
	PisoSalarial      *float64
	ValorHoraNormal   *float64
	ValorHoraExtra50  *float64
	ValorHoraExtra100 *float64
}

// ParticularityDraft is one free-text clause attached to a job role.
type ParticularityDraft struct {
	Conteudo  string
	Categoria string
}

// RecordDrafts is the normalizer output for one input record. A nil
// Agreement means the record is dropped entirely (no union name).
type RecordDrafts struct {
	Agreement       *AgreementDraft
	SalaryFloors    []SalaryFloorDraft
	Particularities []ParticularityDraft
}

// NormalizeRecord maps one semi-structured record into typed drafts. It is
// a pure function: no I/O, and it never fails. Malformed values degrade to
// nil or false per field.
func NormalizeRecord(rec Record) RecordDrafts {
	nome := rec.String(ColSindicato)
	if nome == "" {
		return RecordDrafts{}
	}

	estado := rec.String(ColEstado)
	dataBase := rec.Date(ColDataBase)

	agreement := &AgreementDraft{
		Union: UnionDraft{
			Nome:     nome,
			CNPJ:     rec.String(ColCNPJ),
			Site:     rec.String(ColSite),
			DataBase: dataBase,
			Estado:   estado,
		},
		Titulo:            agreementTitle(estado, nome),
		Tipo:              agreementType(rec),
		Estado:            estado,
		DataBase:          dataBase,
		VigenciaInicio:    rec.Date(ColVigenciaInicio),
		VigenciaFim:       rec.Date(ColVigenciaFim),
		ValeRefeicao:      rec.String(ColValeRefeicao),
		AssistenciaMedica: rec.Bool(ColAssistenciaMedica),
		SeguroDeVida:      rec.Bool(ColSeguroDeVida),
		Uniforme:          rec.Bool(ColUniforme),
		AdicionalNoturno:  rec.String(ColAdicionalNoturno),
	}

	drafts := RecordDrafts{Agreement: agreement}

	// Each record with a CARGO value contributes a new role, even when the
	// same role name already appeared for this agreement. Downstream views
	// group by role id and rely on one role per salary-table row.
	if cargo := rec.String(ColCargo); cargo != "" {
		drafts.SalaryFloors = append(drafts.SalaryFloors, SalaryFloorDraft{
			Cargo:             cargo,
			CargaHoraria:      rec.String(ColCargaHoraria),
			CBO:               rec.String(ColCBO),
			PisoSalarial:      rec.Float(ColPisoSalarial),
			ValorHoraNormal:   rec.Float(ColValorHoraNormal),
			ValorHoraExtra50:  rec.Float(ColValorHoraExtra50),
			ValorHoraExtra100: rec.Float(ColValorHoraExtra100),
		})
	}

	drafts.Particularities = append(drafts.Particularities,
		splitParticularities(rec.String(ColParticularidade), CategoryGeneral)...)
	drafts.Particularities = append(drafts.Particularities,
		splitParticularities(rec.String(ColLicencas), CategoryLeave)...)

	return drafts
}

// agreementTitle derives the display title from state and union name.
func agreementTitle(estado, nome string) string {
	prefix := strings.TrimSpace("CONVENÇÃO COLETIVA " + estado)
	return prefix + " - " + nome
}

// agreementType returns the TIPO column or the default agreement type.
func agreementType(rec Record) string {
	if tipo := rec.String(ColTipo); tipo != "" {
		return tipo
	}
	return "Convenção Coletiva"
}

// splitParticularities breaks comma- or pipe-separated clause text into one
// draft per trimmed, non-empty segment.
func splitParticularities(text, categoria string) []ParticularityDraft {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '|'
	})

	var drafts []ParticularityDraft
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		drafts = append(drafts, ParticularityDraft{Conteudo: seg, Categoria: categoria})
	}
	return drafts
}
