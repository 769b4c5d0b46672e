package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Colunas referenciadas pelas queries de cada repositório. Se uma query
// passar a usar uma coluna nova, inclua-a aqui: o teste garante que os dois
// esquemas de migração (arquivos SQL e runner embutido) a declaram.
var repositoryColumns = map[string][]string{
	"products": {
		"id", "name", "category", "stock", "created_at", "updated_at",
	},
	"customers": {
		"id", "name", "phone", "address", "credit_balance",
		"created_at", "updated_at",
	},
	"sales": {
		"id", "transaction_id", "customer_id", "customer_name",
		"total_amount", "payment_type", "transaction_date", "created_at",
	},
	"sale_items": {
		"id", "sale_id", "product_id", "product_name", "quantity",
		"unit_price", "total_price",
	},
	"debt_payments": {
		"id", "customer_id", "sale_id", "amount", "payment_method",
		"notes", "payment_date", "created_at",
	},
}

func readSchemaSource(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "..", rel))
	require.NoError(t, err, "não foi possível ler %s", rel)
	return string(data)
}

// tableColumns extrai os nomes de coluna do bloco CREATE TABLE da tabela.
func tableColumns(t *testing.T, ddl, table string) map[string]bool {
	t.Helper()
	re := regexp.MustCompile(`(?is)CREATE TABLE IF NOT EXISTS ` + table + `\s*\((.*?)\);`)
	match := re.FindStringSubmatch(ddl)
	require.NotNil(t, match, "tabela %s não encontrada no DDL", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(match[1], "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		if name == "constraint" || name == "primary" || name == "foreign" || name == "unique" {
			continue
		}
		columns[name] = true
	}
	return columns
}

func assertSchemaCoversRepositories(t *testing.T, ddl, source string) {
	t.Helper()
	for table, expected := range repositoryColumns {
		declared := tableColumns(t, ddl, table)
		for _, column := range expected {
			require.True(t, declared[column],
				"%s: coluna %s.%s usada pelo repositório não existe no DDL", source, table, column)
		}
	}
}

// Os repositórios montam SQL à mão; este teste impede que as queries e o
// esquema das migrações divirjam em silêncio (ex.: coluna renomeada só de
// um lado).
func TestMigrationSchemaMatchesRepositoryColumns(t *testing.T) {
	ddl := readSchemaSource(t, filepath.Join("migrations", "000001_init_schema.up.sql"))
	assertSchemaCoversRepositories(t, ddl, "migrations/000001_init_schema.up.sql")
}

func TestEmbeddedMigrationSchemaMatchesRepositoryColumns(t *testing.T) {
	// O runner de cmd/migration carrega o DDL como string no próprio fonte;
	// os blocos CREATE TABLE seguem o mesmo formato do arquivo SQL.
	source := readSchemaSource(t, filepath.Join("cmd", "migration", "main.go"))
	assertSchemaCoversRepositories(t, source, "cmd/migration/main.go")
}
