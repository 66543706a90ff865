package yamlConfig

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteConfigYaml 将v写入fileName, 写标准输出用EncodeYaml
func WriteConfigYaml(fileName string, v interface{}) error {
	writeFile, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := EncodeYaml(writeFile, v); err != nil {
		writeFile.Close()
		return err
	}
	return writeFile.Close()
}

func EncodeYaml(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// GetConfigYaml 从fileName读取配置到v, 未知字段视为错误
func GetConfigYaml(fileName string, v interface{}) error {
	readFile, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer readFile.Close()
	decode := yaml.NewDecoder(readFile)
	decode.KnownFields(true)
	if err := decode.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}
