package credentials

import (
	"github.com/cockroachdb/errors"
	vault "github.com/sosedoff/ansible-vault-go"
	"gopkg.in/yaml.v3"
)

// loadVault decrypts an Ansible Vault file and parses its contents as a
// flat YAML mapping of credential keys to string values.
func loadVault(path, passphrase string) (map[string]string, error) {
	content, err := vault.DecryptFile(path, passphrase)
	if err != nil {
		return nil, errors.Wrapf(err, "decrypt vault %s", path)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal([]byte(content), &values); err != nil {
		return nil, errors.Wrapf(err, "parse vault contents of %s", path)
	}

	return values, nil
}
