package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored domain types. The model set is small enough
// that these are maintained by hand; field order is the wire format and must
// not change without a data migration.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// SeverityMUS serializes Severity values.
	SeverityMUS = severityMUS{}
	// TriStateMUS serializes TriState values.
	TriStateMUS = triStateMUS{}
	// SearchTypeMUS serializes SearchType values.
	SearchTypeMUS = searchTypeMUS{}
	// LawSectionMUS serializes LawSection structs.
	LawSectionMUS = lawSectionMUS{}
	// QueryRecordMUS serializes QueryRecord structs.
	QueryRecordMUS = queryRecordMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type severityMUS struct{}

func (s severityMUS) Marshal(v Severity, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s severityMUS) Unmarshal(bs []byte) (v Severity, n int, err error) {
	i, n, err := varint.Int.Unmarshal(bs)
	return Severity(i), n, err
}

func (s severityMUS) Size(v Severity) (size int) {
	return varint.Int.Size(int(v))
}

func (s severityMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type triStateMUS struct{}

func (s triStateMUS) Marshal(v TriState, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s triStateMUS) Unmarshal(bs []byte) (v TriState, n int, err error) {
	i, n, err := varint.Int.Unmarshal(bs)
	return TriState(i), n, err
}

func (s triStateMUS) Size(v TriState) (size int) {
	return varint.Int.Size(int(v))
}

func (s triStateMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type searchTypeMUS struct{}

func (s searchTypeMUS) Marshal(v SearchType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s searchTypeMUS) Unmarshal(bs []byte) (v SearchType, n int, err error) {
	i, n, err := varint.Int.Unmarshal(bs)
	return SearchType(i), n, err
}

func (s searchTypeMUS) Size(v SearchType) (size int) {
	return varint.Int.Size(int(v))
}

func (s searchTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type lawSectionMUS struct{}

func (s lawSectionMUS) Marshal(v LawSection, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.SectionCode, bs[n:])
	n += ord.String.Marshal(v.SectionNumber, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.CrimeType, bs[n:])
	n += SeverityMUS.Marshal(v.Severity, bs[n:])
	n += ord.String.Marshal(v.Punishment, bs[n:])
	n += ord.String.Marshal(v.FineRange, bs[n:])
	n += ord.String.Marshal(v.ImprisonmentRange, bs[n:])
	n += TriStateMUS.Marshal(v.Bailable, bs[n:])
	n += TriStateMUS.Marshal(v.Cognizable, bs[n:])
	n += TriStateMUS.Marshal(v.Compoundable, bs[n:])
	n += stringSliceMUS.Marshal(v.Keywords, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (s lawSectionMUS) Unmarshal(bs []byte) (v LawSection, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.SectionCode, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SectionNumber, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Category, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CrimeType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Severity, n1, err = SeverityMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Punishment, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.FineRange, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ImprisonmentRange, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Bailable, n1, err = TriStateMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Cognizable, n1, err = TriStateMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Compoundable, n1, err = TriStateMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return
}

func (s lawSectionMUS) Size(v LawSection) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.SectionCode)
	size += ord.String.Size(v.SectionNumber)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Category)
	size += ord.String.Size(v.CrimeType)
	size += SeverityMUS.Size(v.Severity)
	size += ord.String.Size(v.Punishment)
	size += ord.String.Size(v.FineRange)
	size += ord.String.Size(v.ImprisonmentRange)
	size += TriStateMUS.Size(v.Bailable)
	size += TriStateMUS.Size(v.Cognizable)
	size += TriStateMUS.Size(v.Compoundable)
	size += stringSliceMUS.Size(v.Keywords)
	size += ord.String.Size(v.Source)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	size += raw.TimeUnixMicro.Size(v.UpdatedAt)
	return
}

type queryRecordMUS struct{}

func (s queryRecordMUS) Marshal(v QueryRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.QueryText, bs[n:])
	n += SearchTypeMUS.Marshal(v.SearchType, bs[n:])
	n += varint.Int.Marshal(v.ResultsCount, bs[n:])
	n += varint.Int64.Marshal(int64(v.ExecutionTime), bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
	return
}

func (s queryRecordMUS) Unmarshal(bs []byte) (v QueryRecord, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.QueryText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.SearchType, n1, err = SearchTypeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ResultsCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var d int64
	if d, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.ExecutionTime = time.Duration(d)
	n += n1
	if v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return
}

func (s queryRecordMUS) Size(v QueryRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.QueryText)
	size += SearchTypeMUS.Size(v.SearchType)
	size += varint.Int.Size(v.ResultsCount)
	size += varint.Int64.Size(int64(v.ExecutionTime))
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	return
}
