package identity

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/shirady/noobaa-core/identitystore/internal"
)

// accountSchema is the JSON Schema every Account is validated against before
// any write. The uid/gid vs. distinguished_name split is encoded as a oneOf,
// which is what makes a malformed nsfs_account_config fail validation rather
// than silently persisting a half-filled record.
const accountSchema = `{
  "type": "object",
  "required": ["id", "name", "email", "creation_date", "iam_path", "access_keys"],
  "properties": {
    "id":            {"type": "string", "minLength": 1},
    "name":          {"type": "string", "minLength": 1},
    "email":         {"type": "string", "minLength": 1},
    "creation_date": {"type": "string"},
    "owner":         {"type": "string"},
    "creator":       {"type": "string"},
    "iam_path":      {"type": "string", "minLength": 1},
    "master_key_id": {"type": "string"},
    "allow_bucket_creation": {"type": "boolean"},
    "force_md5_etag":        {"type": "boolean"},
    "access_keys": {
      "type": "array",
      "maxItems": 2,
      "items": {
        "type": "object",
        "required": ["access_key", "encrypted_secret_key", "creation_date", "is_active", "creator_identity"],
        "properties": {
          "access_key":           {"type": "string", "minLength": 1},
          "encrypted_secret_key": {"type": "string", "minLength": 1},
          "creation_date":        {"type": "string"},
          "is_active":            {"type": "boolean"},
          "creator_identity":     {"type": "string", "enum": ["RootAccount", "User"]},
          "master_key_id":        {"type": "string"}
        }
      }
    },
    "nsfs_account_config": {
      "oneOf": [
        {
          "type": "object",
          "required": ["uid", "gid", "new_buckets_path"],
          "properties": {
            "uid": {"type": "integer"},
            "gid": {"type": "integer"},
            "new_buckets_path": {"type": "string", "minLength": 1},
            "fs_backend": {"type": "string"}
          },
          "not": {"required": ["distinguished_name"]}
        },
        {
          "type": "object",
          "required": ["distinguished_name", "new_buckets_path"],
          "properties": {
            "distinguished_name": {"type": "string", "minLength": 1},
            "new_buckets_path": {"type": "string", "minLength": 1},
            "fs_backend": {"type": "string"}
          },
          "not": {"anyOf": [{"required": ["uid"]}, {"required": ["gid"]}]}
        }
      ]
    }
  }
}`

var accountSchemaLoader = gojsonschema.NewStringLoader(accountSchema)

// validateAccount runs before any write reaches the filesystem engine. A
// failing validation is reported as ValidationError and no file is touched.
func validateAccount(a *Account) error {
	result, err := gojsonschema.Validate(accountSchemaLoader, gojsonschema.NewGoLoader(a))
	if err != nil {
		return internal.NewError(internal.ErrCodeServiceFailure, "schema validation: "+err.Error(), err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return internal.NewError(internal.ErrCodeValidation,
			fmt.Sprintf("account %q failed schema validation: %s", a.Name, strings.Join(msgs, "; ")), nil)
	}
	return nil
}
