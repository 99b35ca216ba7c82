package database

import "fmt"

// Seed inserts the reference data (schools, monsters, problems, items,
// quests) when the tables are empty. Player and character data is never
// touched.
func (db *DB) Seed() error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM schools`); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []string{
		`INSERT INTO schools (name, description, axiom, health_bonus, starting_gold) VALUES
			('Algebristas', 'Mestres das equações e manipuladores de variáveis.', 'Toda incógnita tem sua solução', 10, 150),
			('Geômetras', 'Arquitetos do espaço e guardiões das formas perfeitas.', 'A forma revela a verdade', 15, 120),
			('Primordiais', 'Guardiões dos números primos e dos fundamentos da matemática.', 'No princípio era o número', 5, 200),
			('Calculistas', 'Mestres das derivadas e integrais, manipuladores do infinitesimal.', 'O movimento revela o infinito', 8, 175);`,

		`INSERT INTO monsters (name, description, base_health, mathematical_concept, difficulty_level, experience_reward, gold_reward) VALUES
			('Zero Absoluto', 'Uma criatura sombria que representa o vazio matemático.', 15, 'Conceito de Zero', 1, 10, 5),
			('Número Negativo Rebelde', 'Um número que se recusa a seguir as regras.', 12, 'Números Negativos', 1, 8, 4),
			('Fração Instável', 'Uma fração que não consegue se decidir entre numerador e denominador.', 18, 'Frações', 2, 15, 8),
			('Equação Quadrática Furiosa', 'Uma equação de segundo grau que perdeu suas raízes.', 25, 'Equações Quadráticas', 3, 25, 12),
			('Hexágono Hostil', 'Um polígono irritado com seus seis lados afiados.', 30, 'Polígonos', 4, 35, 18),
			('Logaritmo Sombrio', 'Uma entidade que inverte exponenciais por prazer.', 35, 'Logaritmos', 5, 50, 25),
			('Derivada Descontrolada', 'A taxa de variação encarnada, nunca parada.', 42, 'Cálculo Diferencial', 6, 70, 35);`,

		`INSERT INTO problems (description, problem_type, answer, difficulty_level, hint_text, time_limit_seconds, experience_reward) VALUES
			('Qual é o resultado de 7 + 5?', 'Aritmética', '12', 1, 'Some os dois números.', 30, 5),
			('Qual é o resultado de 15 - 8?', 'Aritmética', '7', 1, 'Subtraia o menor do maior.', 30, 5),
			('Qual é o resultado de 6 × 4?', 'Aritmética', '24', 2, 'Multiplique.', 45, 10),
			('Qual é o próximo número primo após 7?', 'Números Primos', '11', 2, 'Teste a divisibilidade.', 60, 10),
			('Resolva a equação: x + 3 = 10', 'Álgebra', '7', 3, 'Isole o x.', 60, 15),
			('Qual é a área de um triângulo com base 8 e altura 6?', 'Geometria', '24', 3, 'Base vezes altura sobre dois.', 90, 15),
			('Resolva a equação quadrática: x² - 5x + 6 = 0', 'Álgebra', '2,3', 4, 'Fatore o polinômio.', 120, 25),
			('Qual é o valor de log₂(8)?', 'Logaritmos', '3', 5, 'Que potência de 2 dá 8?', 90, 30),
			('Resolva o sistema: 2x + y = 7 e x - y = 2', 'Álgebra', 'x=3,y=1', 5, 'Some as equações.', 180, 35),
			('Calcule a derivada de f(x) = 3x² + 2x - 1', 'Cálculo', '6x+2', 6, 'Aplique a regra da potência.', 120, 45);`,

		`INSERT INTO items (name, description, type, health_bonus, price, is_tradeable, is_consumable) VALUES
			('Crivo de Eratóstenes', 'Identifica números primos com facilidade.', 'Artefato', 5, 100, TRUE, FALSE),
			('Compasso Dourado', 'Um compasso mágico que sempre desenha círculos perfeitos.', 'Equipamento', 8, 150, TRUE, FALSE),
			('Régua da Proporção Áurea', 'Revela a beleza matemática oculta no mundo.', 'Equipamento', 10, 200, TRUE, FALSE),
			('Poção de Clareza Mental', 'Restaura a vitalidade de quem a bebe.', 'Consumível', 25, 50, TRUE, TRUE),
			('Elixir de Euler', 'Um tônico poderoso destilado de constantes fundamentais.', 'Consumível', 50, 120, TRUE, TRUE),
			('Pergaminho de Pitágoras', 'Anotações antigas sobre triângulos retângulos.', 'Consumível', 0, 30, TRUE, TRUE);`,

		`INSERT INTO quests (title, description, experience_reward, gold_reward, item_reward_id, min_level, is_repeatable) VALUES
			('Primeiros Passos na Arithimancia', 'Prove seu valor resolvendo os fundamentos.', 50, 25, 4, 1, FALSE),
			('O Mistério dos Números Primos', 'Investigue os blocos de construção dos números.', 75, 40, NULL, 2, FALSE),
			('Explorando a Floresta das Equações', 'Derrote as criaturas algébricas da floresta.', 100, 60, 2, 3, FALSE),
			('Exterminador de Zeros', 'Limpe a região dos Zeros Absolutos.', 60, 30, NULL, 1, TRUE),
			('Coletando Fragmentos do Conhecimento', 'Recupere fragmentos espalhados pela região.', 80, 45, NULL, 3, TRUE);`,

		`INSERT INTO quest_objectives (quest_id, description, type, target_quantity, order_index) VALUES
			(1, 'Resolva seu primeiro problema de aritmética', 'SOLVE', 1, 1),
			(1, 'Derrote um Zero Absoluto', 'DEFEAT', 1, 2),
			(2, 'Resolva um problema sobre números primos', 'SOLVE', 1, 1),
			(2, 'Converse com o guardião Primordial', 'TALK', 1, 2),
			(3, 'Resolva dois problemas de álgebra', 'SOLVE', 2, 1),
			(3, 'Derrote a Equação Quadrática Furiosa', 'DEFEAT', 1, 2),
			(3, 'Colete o Compasso Dourado', 'FETCH', 1, 3),
			(4, 'Derrote três Zeros Absolutos', 'DEFEAT', 3, 1),
			(5, 'Colete cinco fragmentos do conhecimento', 'FETCH', 5, 1),
			(5, 'Entregue os fragmentos ao bibliotecário', 'TALK', 1, 2);`,
	}

	for _, query := range seeds {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	return nil
}
