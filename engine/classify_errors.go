package engine

import (
	"errors"

	"github.com/dbparquet/pgparquet/convert"
	"github.com/dbparquet/pgparquet/schema"
)

// classifyStoreError wraps a store.For/Store failure — always a
// scheme-classification problem at this layer, since the individual
// backends report their own I/O failures separately.
func classifyStoreError(err error) error {
	return newError(KindUriUnsupported, nil, err)
}

// classifySchemaError maps schema.VerifyOrCoerce/Project's
// SchemaMismatchError onto the matching engine.ErrorKind, preserving the
// offending column as the error's Path.
func classifySchemaError(err error) error {
	var mismatch *schema.SchemaMismatchError
	if errors.As(err, &mismatch) {
		switch mismatch.Kind {
		case schema.NoStrictCoercionPath:
			return newError(KindNoStrictCoercionPath, []string{mismatch.Column}, err)
		case schema.MapEntriesNullable:
			return newError(KindMapEntriesNullable, []string{mismatch.Column}, err)
		default:
			return newError(KindNoCoercionPath, []string{mismatch.Column}, err)
		}
	}
	return newError(KindSchemaMismatch, nil, err)
}

// classifyConvertError maps convert.CodecError (a single attribute's
// encode/decode failure) onto KindCoercion, preserving the attribute
// path.
func classifyConvertError(err error) error {
	var codecErr *convert.CodecError
	if errors.As(err, &codecErr) {
		return newError(KindCoercion, []string{codecErr.Attr}, err)
	}
	return newError(KindIo, nil, err)
}

// classifyRowgroupError classifies a failure surfaced by
// rowgroup.NewAccumulator/Collect/Flush/Close: schema-build mismatches,
// per-attribute encode failures, and everything else (object-store I/O)
// falling through to KindIo.
func classifyRowgroupError(err error) error {
	var mismatch *schema.SchemaMismatchError
	if errors.As(err, &mismatch) {
		return classifySchemaError(err)
	}
	var codecErr *convert.CodecError
	if errors.As(err, &codecErr) {
		return classifyConvertError(err)
	}
	return newError(KindIo, nil, err)
}

// classifyPqreaderError classifies a failure from pqreader.Open/Next:
// schema-projection mismatches, per-attribute decode failures, and
// everything else falling through to KindIo.
func classifyPqreaderError(err error) error {
	var mismatch *schema.SchemaMismatchError
	if errors.As(err, &mismatch) {
		return classifySchemaError(err)
	}
	var codecErr *convert.CodecError
	if errors.As(err, &codecErr) {
		return classifyConvertError(err)
	}
	return newError(KindIo, nil, err)
}
