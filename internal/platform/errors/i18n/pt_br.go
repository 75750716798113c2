package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		// Game errors
		CodeGameNameEmpty:           "O nome do jogo não pode ficar vazio",
		CodeGameEmptyGmID:           "O mestre do jogo é obrigatório",
		CodeGamePlayerAlreadyMember: "O jogador já está no jogo",
		CodeGamePlayerNotMember:     "O jogador {{.PlayerID}} não é membro do jogo",
		CodeGameGmRemovalForbidden:  "O mestre do jogo não pode ser removido do jogo",
		CodeGameGmOnlyOperation:     "Somente o mestre do jogo pode executar esta operação",

		// Character errors
		CodeCharacterEmptyGameID:       "O personagem deve pertencer a um jogo",
		CodeCharacterEmptyOwnerID:      "O personagem deve ter um dono",
		CodeCharacterEmptyName:         "O nome do personagem não pode ficar vazio",
		CodeCharacterInvalidSheetType:  "Tipo de ficha desconhecido {{.SheetType}}",
		CodeCharacterMissingSheet:      "O personagem {{.CharacterID}} não possui dados de ficha",
		CodeCharacterInvalidAbility:    "O valor de atributo {{.Score}} está fora do intervalo",
		CodeCharacterInvalidLevel:      "O nível {{.Level}} está fora do intervalo",
		CodeCharacterImmutableField:    "O campo {{.Field}} não pode ser alterado",
		CodeCharacterInvalidHitPoints:  "Os pontos de vida são inválidos",
		CodeCharacterInvalidCasterType: "Tipo de conjurador desconhecido {{.CasterType}}",

		// Item errors
		CodeItemEmptyName:         "O nome do item não pode ficar vazio",
		CodeItemInvalidType:       "Tipo de item desconhecido {{.Type}}",
		CodeItemInvalidVisibility: "Visibilidade de item desconhecida {{.Visibility}}",

		// Rules errors
		CodeRulesUnknownSkill:      "Perícia desconhecida {{.Skill}}",
		CodeRulesUnknownAbility:    "Atributo desconhecido {{.Ability}}",
		CodeRulesInvalidHitDie:     "Dado de vida desconhecido {{.Die}}",
		CodeRulesHitDiceExhausted:  "Não há dados de vida {{.Die}} suficientes",
		CodeRulesInvalidSpellLevel: "O nível de magia {{.Level}} está fora do intervalo",

		// Storage errors
		CodeNotFound:      "O registro solicitado não foi encontrado",
		CodeWriteConflict: "A gravação foi rejeitada, tente novamente",
		CodePathInvalid:   "Caminho de documento inválido",

		// Seed errors
		CodeSeedOutOfRange: "O valor da semente está fora do intervalo",
	},
}
