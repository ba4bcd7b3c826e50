package lock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/gconf"
)

const (
	// DefaultMaxDescriptionLength is used when no configuration is stored.
	DefaultMaxDescriptionLength = 100

	maxDescriptionCapacity = 1024
)

// Configuration is the on chain configuration of the lock extension.
//
// MaxDescriptionLength bounds lock descriptions and sets the size of the
// description area of new records. RecordDeposit is an amount of native
// coins moved from the payer to the lock address on creation and returned
// to the beneficiary on withdrawal.
type Configuration struct {
	Metadata             *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	MaxDescriptionLength uint32             `protobuf:"varint,2,opt,name=max_description_length,json=maxDescriptionLength,proto3" json:"max_description_length,omitempty"`
	RecordDeposit        uint64             `protobuf:"varint,3,opt,name=record_deposit,json=recordDeposit,proto3" json:"record_deposit,omitempty"`
}

type configurationProto Configuration

func (m *configurationProto) Reset()         { *m = configurationProto{} }
func (m *configurationProto) String() string { return proto.CompactTextString(m) }
func (*configurationProto) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationProto)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationProto)(c))
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if c.MaxDescriptionLength == 0 || c.MaxDescriptionLength > maxDescriptionCapacity {
		return errors.Wrapf(errors.ErrInput, "max description length must be within 1 and %d", maxDescriptionCapacity)
	}
	return nil
}

// DefaultConfiguration is used when none was stored at genesis.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metadata:             &timelock.Metadata{Schema: 1},
		MaxDescriptionLength: DefaultMaxDescriptionLength,
	}
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, "lock", &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
