package answers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const sampleCSV = "类型,题目,选项,答案\n" +
	"单选题,光合作用发生在哪里,叶绿体|线粒体|细胞核,叶绿体\n" +
	"多选题,下列属于哺乳动物的是,鲸|鲨鱼|蝙蝠,鲸|蝙蝠\n" +
	"判断题,地球是圆的,,\n"

func TestParseCSV(t *testing.T) {
	items, err := ParseCSV(strings.NewReader(sampleCSV), ImportOptions{OptionSeparator: "|", AnswerSeparator: "|"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, Item{
		Type:     "单选题",
		Question: "光合作用发生在哪里",
		Options:  []string{"叶绿体", "线粒体", "细胞核"},
		Answer:   []string{"叶绿体"},
	}, items[0])
	assert.Equal(t, []string{"鲸", "蝙蝠"}, items[1].Answer)
	assert.Empty(t, items[2].Options)
	assert.Empty(t, items[2].Answer)
}

func TestParseCSVEnglishHeaderAndEscapedSeparator(t *testing.T) {
	raw := "\ufefftype,question,options,answer\n" +
		"single,\"Capital of France?\",\"Paris\tLyon\",Paris\n"
	items, err := ParseCSV(strings.NewReader(raw), ImportOptions{OptionSeparator: `\t`, AnswerSeparator: ";"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"Paris", "Lyon"}, items[0].Options)
}

func TestParseCSVDropsBlankQuestionsAndParts(t *testing.T) {
	raw := "类型,题目,选项,答案\n" +
		"单选题,  ,甲|乙,甲\n" +
		"多选题,下列正确的是,甲|| 乙 |,甲||乙\n"
	items, err := ParseCSV(strings.NewReader(raw), ImportOptions{OptionSeparator: "|", AnswerSeparator: "|"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "下列正确的是", items[0].Question)
	assert.Equal(t, []string{"甲", "乙"}, items[0].Options)
	assert.Equal(t, []string{"甲", "乙"}, items[0].Answer)
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("题目,答案\nq,a\n"), ImportOptions{})

	var he *HeaderError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, []string{"类型", "选项"}, he.Missing)
}

func TestLoadCSVFileGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(sampleCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "answers.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))

	items, err := LoadCSVFile(path, ImportOptions{Encoding: "GBK", OptionSeparator: "|", AnswerSeparator: "|"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "光合作用发生在哪里", items[0].Question)
}

func TestLoadCSVFileRejectsUnknownEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	_, err := LoadCSVFile(path, ImportOptions{Encoding: "latin1"})
	assert.Error(t, err)
}

func TestParseSeparator(t *testing.T) {
	assert.Equal(t, "\n", ParseSeparator(`\n`))
	assert.Equal(t, " ", ParseSeparator(`\s`))
	assert.Equal(t, "|", ParseSeparator("|"))
}
